package template

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lakshay-nasa/city-scout/models"
)

// StockPhotoURL is substituted when the mapping collaborator supplied no
// photo for a place.
const StockPhotoURL = "https://images.unsplash.com/photo-1500835595333-5b4737526b3c?w=400&q=80"

const emptyStateHTML = `<div style="text-align:center; padding: 30px; color:#95a5a6; font-style: italic; border: 2px dashed #bdc3c7; border-radius: 8px;">No locations selected yet. Go back and pin some spots!</div>`

// MapLink builds the Google Maps search URL for a place. Places that came
// from the mapping collaborator link by name + place id; manually dropped
// pins have no id and fall back to raw coordinates. Losing the id must
// produce the coordinate link, never a broken one.
func MapLink(p models.Place) string {
	if p.PlaceID != "" {
		return "https://www.google.com/maps/search/?api=1&query=" + encodeQuery(p.Name) +
			"&query_place_id=" + p.PlaceID
	}
	return "https://www.google.com/maps/search/?api=1&query=" +
		strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

func encodeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// RenderPlaceListFragment maps the places, in order, to numbered card
// blocks. Pure and deterministic; the export pipeline calls it again at
// export time so the artifact reflects the current selection, not the
// preview.
func RenderPlaceListFragment(places []models.Place) string {
	if len(places) == 0 {
		return emptyStateHTML
	}

	var b strings.Builder
	for i, p := range places {
		photo := p.Photo
		if photo == "" {
			photo = StockPhotoURL
		}
		fmt.Fprintf(&b, `
      <div style="margin-bottom: 15px; padding: 15px; background: #ffffff; border: 1px solid #e0e0e0; border-radius: 12px; display: flex; align-items: center; box-shadow: 0 2px 4px rgba(0,0,0,0.05); font-family: Arial, sans-serif;">
        <div style="background-color: #3498db; color: white; font-weight: bold; width: 32px; height: 32px; border-radius: 50%%; display: flex; align-items: center; justify-content: center; margin-right: 15px; flex-shrink: 0;">
          %d
        </div>
        <img
          src="%s"
          alt="%s"
          style="width: 60px; height: 60px; border-radius: 8px; object-fit: cover; margin-right: 15px; border: 1px solid #eee;"
        />
        <div style="flex: 1; min-width: 0;">
          <h3 style="margin: 0 0 4px; color: #2c3e50; font-size: 18px; white-space: nowrap; overflow: hidden; text-overflow: ellipsis;">%s</h3>
          <p style="margin: 0; font-size: 14px; color: #7f8c8d;">
            <a href="%s" target="_blank" style="color: #3498db; text-decoration: none; font-weight: 600;">
              View on Map →
            </a>
          </p>
        </div>
      </div>
    `, i+1, photo, p.Name, p.Name, MapLink(p))
	}
	return b.String()
}
