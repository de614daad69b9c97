package content

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the content block endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/content", listBlocksHandler(store))
	r.Get("/api/content/{key}", getBlockHandler(store))
	r.Put("/api/content/{key}", putBlockHandler(store))
	r.Delete("/api/content/{key}", deleteBlockHandler(store))
}

func listBlocksHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blocks, err := store.List(r.Context())
		if err != nil {
			log.Printf("content: list: %v", err)
			writeError(w, http.StatusInternalServerError, "could not list content")
			return
		}
		if blocks == nil {
			blocks = []Block{}
		}
		writeJSON(w, http.StatusOK, blocks)
	}
}

func getBlockHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		b, err := store.Get(r.Context(), key)
		if err != nil {
			writeError(w, http.StatusNotFound, "content not found")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func putBlockHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		var b Block
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		b.Key = key
		if err := store.Set(r.Context(), &b); err != nil {
			log.Printf("content: set %s: %v", key, err)
			writeError(w, http.StatusInternalServerError, "could not save content")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func deleteBlockHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if err := store.Delete(r.Context(), key); err != nil {
			writeError(w, http.StatusNotFound, "content not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
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
