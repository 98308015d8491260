package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rocket-sim/flightlog/store"
)

type Handler struct {
	Store *store.Store
}

func (h *Handler) Landings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		landings, err := h.Store.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, landings)

	case http.MethodPost:
		var l store.Landing
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if l.Kind == "" {
			http.Error(w, "Missing kind", http.StatusBadRequest)
			return
		}
		saved, err := h.Store.Insert(r.Context(), l)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, saved)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) LandingByID(w http.ResponseWriter, r *http.Request) {
	var id int
	if _, err := fmt.Sscanf(r.URL.Path, "/landings/%d", &id); err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, err := h.Store.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, l)

	case http.MethodDelete:
		err := h.Store.Delete(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
