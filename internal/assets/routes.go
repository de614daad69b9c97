package assets

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the media-library proxy endpoints.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/assets/gallery", galleryHandler(svc))
	r.Get("/api/assets/logo", logoHandler(svc))
	r.Get("/api/assets/ping", pingHandler(svc))
}

type galleryResponse struct {
	Images []Resource `json:"images"`
	Count  int        `json:"count"`
	Stale  bool       `json:"stale,omitempty"`
}

func galleryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, stale, err := svc.Gallery(r.Context())
		if err != nil {
			log.Printf("assets: gallery: %v", err)
			writeError(w, http.StatusInternalServerError, "could not list gallery images")
			return
		}
		if resources == nil {
			resources = []Resource{}
		}
		writeJSON(w, http.StatusOK, galleryResponse{
			Images: resources,
			Count:  len(resources),
			Stale:  stale,
		})
	}
}

type logoResponse struct {
	Logo  *Resource `json:"logo"`
	Stale bool      `json:"stale,omitempty"`
}

func logoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logo, stale, err := svc.Logo(r.Context())
		if err != nil {
			log.Printf("assets: logo: %v", err)
			writeError(w, http.StatusInternalServerError, "could not fetch logo")
			return
		}
		writeJSON(w, http.StatusOK, logoResponse{Logo: logo, Stale: stale})
	}
}

func pingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if err := svc.Ping(r.Context()); err != nil {
			log.Printf("assets: ping: %v", err)
			status = "unreachable"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":         status,
			"cached_entries": svc.CachedEntries(),
		})
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
