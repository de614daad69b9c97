package cocktails

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the cocktail menu endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/cocktails", listCocktailsHandler(store))
	r.Get("/api/cocktails/{id}", getCocktailHandler(store))
	r.Post("/api/cocktails", createCocktailHandler(store))
	r.Put("/api/cocktails/{id}", updateCocktailHandler(store))
	r.Delete("/api/cocktails/{id}", deleteCocktailHandler(store))
}

func listCocktailsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{
			Category:     r.URL.Query().Get("category"),
			FeaturedOnly: r.URL.Query().Get("featured") == "true",
		}

		out, err := store.List(r.Context(), f)
		if err != nil {
			log.Printf("cocktails: list: %v", err)
			writeError(w, http.StatusInternalServerError, "could not list cocktails")
			return
		}
		if out == nil {
			out = []Cocktail{}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getCocktailHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "cocktail not found")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func createCocktailHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c Cocktail
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if c.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		if err := store.Create(r.Context(), &c); err != nil {
			log.Printf("cocktails: create: %v", err)
			writeError(w, http.StatusInternalServerError, "could not create cocktail")
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func updateCocktailHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var c Cocktail
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		c.ID = id
		if err := store.Update(r.Context(), &c); err != nil {
			writeError(w, http.StatusNotFound, "cocktail not found")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func deleteCocktailHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "cocktail not found")
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
