// Package itinerary exposes the drafting workflow over HTTP: build a
// bounded selection of places, commit a draft record, hand a template to
// the editor, and export the final artifact.
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/lakshay-nasa/city-scout/export"
	"github.com/lakshay-nasa/city-scout/globals"
	"github.com/lakshay-nasa/city-scout/lifecycle"
	"github.com/lakshay-nasa/city-scout/middleware"
	"github.com/lakshay-nasa/city-scout/models"
	"github.com/lakshay-nasa/city-scout/notices"
	"github.com/lakshay-nasa/city-scout/selection"
	"github.com/lakshay-nasa/city-scout/template"
	"github.com/lakshay-nasa/city-scout/utils"
)

// Handler carries the wired collaborators for the itinerary routes.
type Handler struct {
	Sessions *selection.Registry
	Records  *lifecycle.Store
	Pipeline *export.Pipeline
	Notices  *notices.Hub
}

func NewHandler(sessions *selection.Registry, records *lifecycle.Store, pipeline *export.Pipeline, hub *notices.Hub) *Handler {
	return &Handler{Sessions: sessions, Records: records, Pipeline: pipeline, Notices: hub}
}

// POST /api/session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var profile models.Profile
	if r.Body != nil {
		// profile in the body is optional; a blank one is fine
		_ = json.NewDecoder(r.Body).Decode(&profile)
	}

	sess := h.Sessions.Start(profile)
	token, err := middleware.IssueSessionToken(sess.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue session token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"sessionId": sess.ID,
		"token":     token,
	})
}

// session resolves the authenticated drafting session, writing the error
// response itself when there is none.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*selection.Session, bool) {
	sessionID, _ := r.Context().Value(globals.SessionIDKey).(string)
	sess, err := h.Sessions.Get(sessionID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return sess, true
}

// POST /api/session/places
func (h *Handler) AddPlace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil || strings.TrimSpace(place.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid place payload")
		return
	}

	notice, err := sess.Add(place)
	h.Notices.Publish(sess.ID, notice)
	if errors.Is(err, selection.ErrCapacityExceeded) {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{"notice": notice, "count": sess.Len()})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"notice": notice, "count": sess.Len()})
}

// DELETE /api/session/places/:index
func (h *Handler) RemovePlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid index")
		return
	}

	// out-of-range is a silent no-op
	sess.Remove(index)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": sess.Len()})
}

// GET /api/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"places":   sess.Places(),
		"profile":  sess.Profile(),
		"recordId": recordIDOrNil(sess.RecordID()),
	})
}

// PUT /api/session/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile payload")
		return
	}

	sess.SetProfile(profile)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"profile": sess.Profile()})
}

// POST /api/itineraries/draft
//
// Committing to a draft is the moment the remote record is born; the
// watcher picks the insert off the change stream. A failed insert is a
// warning, never a blocker: the user still gets the editor view.
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if sess.Len() == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Pick places first")
		return
	}

	profile := sess.Profile()
	places := sess.Places()

	var warnings []string
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := h.Records.Create(ctx, profile, places)
	if err != nil {
		log.Printf("⚠️ Draft record creation failed, proceeding without metadata sync: %v", err)
		warnings = append(warnings, "Metadata sync failed; draft not recorded remotely")
		h.Notices.Publish(sess.ID, selection.Notice{
			Kind:    selection.NoticeWarn,
			Message: "Metadata sync failed; continuing without it",
		})
	}
	sess.SetRecordID(id)

	fragment := template.RenderPlaceListFragment(places)
	doc := template.BuildDocument(profile.Name, profile.Subtitle)
	doc.PrefillTripList(fragment)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"recordId":  recordIDOrNil(id),
		"design":    doc,
		"mergeTags": template.MergeTags(fragment, profile),
		"warnings":  warnings,
	})
}

// POST /api/itineraries/export
//
// The body carries the opaque HTML the editor exported. The pipeline
// finalizes the record status best-effort, substitutes the merge tags and
// delivers over both channels.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var body struct {
		HTML string `json:"html"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.HTML == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing editor HTML")
		return
	}

	res, err := h.Pipeline.Run(r.Context(), export.Request{
		DocID:      sess.RecordID(),
		EditorHTML: body.HTML,
		Places:     sess.Places(),
		Profile:    sess.Profile(),
	})
	if errors.Is(err, export.ErrExportInProgress) {
		utils.RespondWithError(w, http.StatusConflict, "Export already in progress")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	if res.Success {
		h.Notices.Publish(sess.ID, selection.Notice{Kind: selection.NoticeSuccess, Message: res.Message})
	}
	for _, warning := range res.Warnings {
		h.Notices.Publish(sess.ID, selection.Notice{Kind: selection.NoticeWarn, Message: warning})
	}
	if !res.Clipboard.OK {
		h.Notices.Publish(sess.ID, selection.Notice{Kind: selection.NoticeWarn, Message: "Clipboard copy failed"})
	}
	if !res.Download.OK {
		h.Notices.Publish(sess.ID, selection.Notice{Kind: selection.NoticeWarn, Message: "File download failed"})
	}

	utils.RespondWithJSON(w, http.StatusOK, res)
}

// DELETE /api/session
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID, _ := r.Context().Value(globals.SessionIDKey).(string)
	h.Sessions.End(sessionID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ended": true})
}

func recordIDOrNil(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
