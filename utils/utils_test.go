package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Lakshay Nasa", "lakshay_nasa"},
		{"Tech  Explorer!", "tech_explorer_"},
		{"ALLCAPS", "allcaps"},
		{"trip #1 (2026)", "trip_1_2026_"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
