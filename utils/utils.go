package utils

import (
	"mime/multipart"
	"net/http"
	"os"
	"regexp"
	"strings"
)

// --- Filename Helpers ---

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses every run of non-alphanumeric
// characters to a single underscore, matching the exported artifact
// filename contract (itinerary_<slug>.html).
func Slugify(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "_")
}

// --- Image Validation ---

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

func ValidateImageFileType(w http.ResponseWriter, header *multipart.FileHeader) bool {
	mimeType := header.Header.Get("Content-Type")
	if !SupportedImageTypes[mimeType] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF, BMP, TIFF.", http.StatusBadRequest)
		return false
	}
	return true
}

// --- Directory Helper ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
