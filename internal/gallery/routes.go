package gallery

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ImageLister supplies the gallery image list, typically backed by the
// media-library proxy.
type ImageLister interface {
	GalleryImages(ctx context.Context) ([]Image, error)
}

// RegisterRoutes mounts the layout endpoints. lister may be nil when
// the media library is not configured; the POST form still works with
// an explicit image list.
func RegisterRoutes(r chi.Router, lister ImageLister) {
	composer := &Composer{}
	r.Get("/api/gallery/layout", getLayoutHandler(composer, lister))
	r.Post("/api/gallery/layout", postLayoutHandler(composer))
}

func parseViewport(v string) (Viewport, bool) {
	switch v {
	case "", string(Desktop):
		return Desktop, true
	case string(Mobile):
		return Mobile, true
	}
	return "", false
}

func getLayoutHandler(composer *Composer, lister ImageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vp, ok := parseViewport(r.URL.Query().Get("viewport"))
		if !ok {
			writeError(w, http.StatusBadRequest, "viewport must be desktop or mobile")
			return
		}
		if lister == nil {
			writeError(w, http.StatusBadRequest, "media library is not configured")
			return
		}

		images, err := lister.GalleryImages(r.Context())
		if err != nil {
			log.Printf("gallery: listing images: %v", err)
			writeError(w, http.StatusInternalServerError, "could not list gallery images")
			return
		}
		images = Dedupe(images)

		if limit := r.URL.Query().Get("count"); limit != "" {
			n, err := strconv.Atoi(limit)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "count must be a non-negative integer")
				return
			}
			if n < len(images) {
				images = images[:n]
			}
		}

		writeJSON(w, http.StatusOK, composer.Compose(images, vp))
	}
}

type layoutRequest struct {
	Viewport string  `json:"viewport"`
	Images   []Image `json:"images"`
}

func postLayoutHandler(composer *Composer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req layoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		vp, ok := parseViewport(req.Viewport)
		if !ok {
			writeError(w, http.StatusBadRequest, "viewport must be desktop or mobile")
			return
		}
		writeJSON(w, http.StatusOK, composer.Compose(Dedupe(req.Images), vp))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
