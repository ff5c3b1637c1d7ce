package itinerary

import (
	"bytes"
	"encoding/base64"
	"image/jpeg"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"

	"github.com/lakshay-nasa/city-scout/utils"
)

const avatarSize = 256

// POST /api/session/avatar
//
// Accepts an image upload, downsizes it and stores it on the profile as a
// JPEG data URI so the generated templates stay self-contained.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to decode image")
		return
	}

	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode avatar")
		return
	}

	profile := sess.Profile()
	profile.Avatar = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	sess.SetProfile(profile)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"profile": sess.Profile()})
}
