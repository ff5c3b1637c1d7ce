package template

import "strings"

// Merge tags understood by the export renderer. The structured document
// produced by BuildDocument carries each of them at most once.
const (
	TagTripList     = "{{trip_list_html}}"
	TagUserName     = "{{user_name}}"
	TagUserSubtitle = "{{user_subtitle}}"
)

// Template is raw text plus the merge tags declared substitutable in it.
// It is deliberately separate from Document: Document feeds the live editor
// preview, Template renders opaque editor output into the final artifact.
type Template struct {
	raw  string
	tags []string
}

func NewTemplate(raw string, tags ...string) Template {
	return Template{raw: raw, tags: tags}
}

// Render substitutes each declared tag with its value, first occurrence
// only. Replace-once is intentional: every generated document carries each
// tag exactly once, and a duplicate the user typed into the editor is kept
// literal instead of being second-guessed.
func (t Template) Render(values map[string]string) string {
	out := t.raw
	for _, tag := range t.tags {
		v, ok := values[tag]
		if !ok {
			continue
		}
		out = strings.Replace(out, tag, v, 1)
	}
	return out
}

// FinalValues are the merge-tag values substituted into the editor's
// exported HTML.
type FinalValues struct {
	TripListHTML string
	Name         string
	Subtitle     string
}

// RenderFinal produces the shareable artifact text. An empty subtitle
// substitutes a single space so the surrounding layout keeps its height.
func RenderFinal(html string, v FinalValues) string {
	subtitle := v.Subtitle
	if subtitle == "" {
		subtitle = " "
	}
	t := NewTemplate(html, TagTripList, TagUserName, TagUserSubtitle)
	return t.Render(map[string]string{
		TagTripList:     v.TripListHTML,
		TagUserName:     v.Name,
		TagUserSubtitle: subtitle,
	})
}
