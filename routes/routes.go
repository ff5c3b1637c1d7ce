package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/lakshay-nasa/city-scout/itinerary"
	"github.com/lakshay-nasa/city-scout/middleware"
	"github.com/lakshay-nasa/city-scout/notices"
	"github.com/lakshay-nasa/city-scout/ratelim"
)

// AddItineraryRoutes wires the drafting workflow.
func AddItineraryRoutes(router *httprouter.Router, h *itinerary.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/session", rl.Limit(h.StartSession))                                  // Start a drafting session
	router.GET("/api/session", middleware.Authenticate(h.GetSession))                      // Current selection + profile
	router.DELETE("/api/session", middleware.Authenticate(h.EndSession))                   // Discard the session
	router.POST("/api/session/places", middleware.Authenticate(h.AddPlace))                // Add a place (max 5)
	router.DELETE("/api/session/places/:index", middleware.Authenticate(h.RemovePlace))    // Remove a place
	router.PUT("/api/session/profile", middleware.Authenticate(h.UpdateProfile))           // Edit name/subtitle/avatar
	router.POST("/api/session/avatar", middleware.Authenticate(h.UploadAvatar))            // Upload avatar image
	router.POST("/api/itineraries/draft", middleware.Authenticate(h.Draft))                // Create the draft record + editor design
	router.POST("/api/itineraries/export", rl.Limit(middleware.Authenticate(h.Export)))    // Finalize + deliver the artifact
}

// AddNoticeRoutes wires the per-session notice stream.
func AddNoticeRoutes(router *httprouter.Router, hub *notices.Hub) {
	router.GET("/api/session/notices/ws", middleware.Authenticate(notices.WebSocketHandler(hub)))
}

// AddStaticRoutes serves exported artifacts for download.
func AddStaticRoutes(router *httprouter.Router, exportDir string) {
	router.ServeFiles("/static/exports/*filepath", http.Dir(exportDir))
}
