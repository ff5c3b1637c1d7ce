package template

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lakshay-nasa/city-scout/models"
)

func TestBuildDocumentStructure(t *testing.T) {
	doc := BuildDocument("Lakshay Nasa", "Tech Explorer")

	if len(doc.Body.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(doc.Body.Rows))
	}
	for _, id := range []string{RowHeader, RowList, RowFooter} {
		if doc.Row(id) == nil {
			t.Fatalf("row %q not addressable", id)
		}
	}

	header := doc.Row(RowHeader).Columns[0].Contents[0].Values.HTML
	if !strings.Contains(header, "Lakshay Nasa") || !strings.Contains(header, "Tech Explorer") {
		t.Fatal("header not stamped with profile")
	}

	list := doc.Row(RowList).Columns[0].Contents[0].Values.HTML
	if !strings.Contains(list, TagTripList) {
		t.Fatal("list row must carry the trip-list merge tag")
	}
	if strings.Count(list, TagTripList) != 1 {
		t.Fatal("merge tag must appear exactly once")
	}
}

func TestBuildDocumentIsValueCaptured(t *testing.T) {
	doc := BuildDocument("Before", "S")
	// header content must not change with later profile edits
	header := doc.Row(RowHeader).Columns[0].Contents[0].Values.HTML
	if !strings.Contains(header, "Before") {
		t.Fatal("name missing from header")
	}
}

func TestPrefillTripList(t *testing.T) {
	doc := BuildDocument("N", "S")
	fragment := RenderPlaceListFragment([]models.Place{{Name: "Spot"}})

	if !doc.PrefillTripList(fragment) {
		t.Fatal("prefill failed to locate the list row")
	}

	list := doc.Row(RowList).Columns[0].Contents[0].Values.HTML
	if strings.Contains(list, TagTripList) {
		t.Fatal("merge tag survived prefill")
	}
	if !strings.Contains(list, "Spot") {
		t.Fatal("fragment not injected")
	}
}

func TestDocumentJSONShape(t *testing.T) {
	doc := BuildDocument("N", "S")

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"counters"`, `"body"`, `"rows"`, `"_meta"`, `"contentWidth"`, `"list-row"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("editor design json missing %s", key)
		}
	}
}

func TestMergeTagsRegistration(t *testing.T) {
	tags := MergeTags("<div/>", models.Profile{Name: "N", Avatar: "data:image/jpeg;base64,x"})

	if tags["trip_list_html"].Value != "<div/>" {
		t.Fatal("trip_list_html value wrong")
	}
	if tags["user_name"].Value != "N" {
		t.Fatal("user_name value wrong")
	}
	if tags["user_avatar"].Value == "" {
		t.Fatal("user_avatar value missing")
	}
}
