package events

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the catering event endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/events", listEventsHandler(store))
	r.Get("/api/events/{id}", getEventHandler(store))
	r.Post("/api/events", createEventHandler(store))
	r.Put("/api/events/{id}", updateEventHandler(store))
	r.Delete("/api/events/{id}", deleteEventHandler(store))
}

func listEventsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f ListFilter
		f.Status = r.URL.Query().Get("status")

		var err error
		if f.From, err = parseTimeParam(r.URL.Query().Get("from")); err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		if f.To, err = parseTimeParam(r.URL.Query().Get("to")); err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date")
			return
		}

		out, err := store.List(r.Context(), f)
		if err != nil {
			log.Printf("events: list: %v", err)
			writeError(w, http.StatusInternalServerError, "could not list events")
			return
		}
		if out == nil {
			out = []Event{}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getEventHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func createEventHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if e.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		if err := store.Create(r.Context(), &e); err != nil {
			log.Printf("events: create: %v", err)
			writeError(w, http.StatusInternalServerError, "could not create event")
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}

func updateEventHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var e Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		e.ID = id
		if err := store.Update(r.Context(), &e); err != nil {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func deleteEventHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
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
