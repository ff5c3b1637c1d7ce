package template

import (
	"fmt"
	"strings"

	"github.com/lakshay-nasa/city-scout/models"
)

// Document is the structured design handed to the WYSIWYG editor
// collaborator, in the editor's native JSON shape.
type Document struct {
	Counters map[string]int `json:"counters"`
	Body     Body           `json:"body"`
}

type Body struct {
	ID     string     `json:"id"`
	Rows   []Row      `json:"rows"`
	Values BodyValues `json:"values"`
}

type BodyValues struct {
	BackgroundColor string     `json:"backgroundColor"`
	ContentWidth    string     `json:"contentWidth"`
	FontFamily      FontFamily `json:"fontFamily"`
}

type FontFamily struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Row struct {
	ID      string    `json:"id"`
	Cells   []int     `json:"cells"`
	Columns []Column  `json:"columns"`
	Values  RowValues `json:"values"`
}

type RowValues struct {
	BackgroundColor string `json:"backgroundColor"`
	Padding         string `json:"padding"`
	Meta            Meta   `json:"_meta"`
}

type Column struct {
	ID       string       `json:"id"`
	Contents []Content    `json:"contents"`
	Values   ColumnValues `json:"values"`
}

type ColumnValues struct {
	Meta Meta `json:"_meta"`
}

type Content struct {
	ID     string        `json:"id"`
	Type   string        `json:"type"`
	Values ContentValues `json:"values"`
}

type ContentValues struct {
	HTML             string `json:"html"`
	ContainerPadding string `json:"containerPadding"`
}

type Meta struct {
	HTMLID         string `json:"htmlID"`
	HTMLClassNames string `json:"htmlClassNames"`
}

// Stable row ids; RowList is the addressable section whose raw HTML carries
// the trip-list merge tag, so callers can pre-fill it before loading the
// design into the editor.
const (
	RowHeader = "header-row"
	RowList   = "list-row"
	RowFooter = "footer-row"
)

const headerImageURL = "https://images.unsplash.com/photo-1488646953014-85cb44e25828?auto=format&fit=crop&w=1200&q=80"

// BuildDocument returns the fixed three-section itinerary design: a header
// block stamped with the profile, a body block holding the literal
// trip-list merge tag, and a static footer. The profile is interpolated by
// value; later profile edits never reach an already built document.
func BuildDocument(name, subtitle string) Document {
	headerHTML := fmt.Sprintf(`
                <div style="font-family: Arial, sans-serif; background-color: #ffffff;">
                  <div style="background-image: url('%s'); background-size: cover; background-position: center; height: 250px; border-radius: 12px 12px 0 0;"></div>
                  <div style="padding: 30px 20px; text-align: center;">
                    <h1 style="margin: 0; color: #2c3e50; font-size: 32px; font-weight: 700;">My Travel Itinerary ✈️</h1>
                    <p style="margin: 10px 0 0; color: #7f8c8d; font-size: 16px;">
                      Curated by <strong>%s</strong> <br/>
                      <span style="font-size: 14px; font-style: italic;">%s</span>
                    </p>
                  </div>
                  <hr style="border: none; border-bottom: 1px solid #ecf0f1; margin: 0 20px;" />
                </div>
              `, headerImageURL, name, subtitle)

	listHTML := `
                <div style="font-family: Arial, sans-serif; padding: 30px 20px;">
                  <h2 style="margin: 0 0 20px; color: #34495e; font-size: 24px; text-align: center;">📍 Places to Visit</h2>
                  ` + TagTripList + `
                </div>
              `

	footerHTML := `
                <div style="font-family: Arial, sans-serif; padding: 20px; text-align: center; background-color: #f8f9fa; border-radius: 0 0 12px 12px;">
                  <p style="margin: 0; color: #bdc3c7; font-size: 12px;">Created with CityScout • Save & Share Your Journey</p>
                </div>
              `

	return Document{
		Counters: map[string]int{"u_row": 1, "u_column": 1, "u_content_html": 1},
		Body: Body{
			ID: "city-scout-root",
			Rows: []Row{
				htmlRow(RowHeader, "header-col", "header-content", headerHTML, 1),
				htmlRow(RowList, "list-col", "list-content", listHTML, 2),
				htmlRow(RowFooter, "footer-col", "footer-content", footerHTML, 3),
			},
			Values: BodyValues{
				BackgroundColor: "#ecf0f1",
				ContentWidth:    "600px",
				FontFamily: FontFamily{
					Label: "Helvetica",
					Value: "'Helvetica Neue', Helvetica, Arial, sans-serif",
				},
			},
		},
	}
}

func htmlRow(rowID, colID, contentID, html string, n int) Row {
	return Row{
		ID:    rowID,
		Cells: []int{1},
		Columns: []Column{{
			ID: colID,
			Contents: []Content{{
				ID:   contentID,
				Type: "html",
				Values: ContentValues{
					HTML:             html,
					ContainerPadding: "0px",
				},
			}},
			Values: ColumnValues{
				Meta: Meta{HTMLID: fmt.Sprintf("u_column_%d", n), HTMLClassNames: "u_column"},
			},
		}},
		Values: RowValues{
			BackgroundColor: "#ffffff",
			Padding:         "0px",
			Meta:            Meta{HTMLID: fmt.Sprintf("u_row_%d", n), HTMLClassNames: "u_row"},
		},
	}
}

// Row finds a row by its stable id; nil when absent.
func (d *Document) Row(id string) *Row {
	for i := range d.Body.Rows {
		if d.Body.Rows[i].ID == id {
			return &d.Body.Rows[i]
		}
	}
	return nil
}

// PrefillTripList replaces the trip-list merge tag inside the list row with
// the rendered fragment so the editor opens on a live preview. The merge
// tag mapping keeps the tag registered for the export path. Reports whether
// the list row was found and filled.
func (d *Document) PrefillTripList(fragment string) bool {
	row := d.Row(RowList)
	if row == nil || len(row.Columns) == 0 || len(row.Columns[0].Contents) == 0 {
		return false
	}
	values := &row.Columns[0].Contents[0].Values
	values.HTML = strings.Replace(values.HTML, TagTripList, fragment, 1)
	return true
}

// MergeTag is one entry of the tag mapping registered alongside the design
// when it is handed to the editor.
type MergeTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MergeTags builds the editor merge-tag registration for the current
// selection and profile.
func MergeTags(fragment string, profile models.Profile) map[string]MergeTag {
	return map[string]MergeTag{
		"trip_list_html": {Name: "Trip List HTML", Value: fragment},
		"user_name":      {Name: "User Name", Value: profile.Name},
		"user_avatar":    {Name: "User Avatar", Value: profile.Avatar},
	}
}
