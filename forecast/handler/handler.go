package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"rocket-sim/forecast/model"
	sim "rocket-sim/simulator/model"
)

// ForecastHandler serves GET /forecast. Every query parameter is optional and
// falls back to model.DefaultRequest.
func ForecastHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Only GET allowed", http.StatusMethodNotAllowed)
		return
	}

	req := model.DefaultRequest()
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"thrust", &req.Thrust},
		{"duration", &req.Duration},
		{"dt", &req.Dt},
		{"budget", &req.Budget},
		{"gravity", &req.Config.Gravity.Y},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s must be a number", p.name), http.StatusBadRequest)
			return
		}
		*p.dst = v
	}

	profile, err := model.Forecast(r.Context(), req)
	if errors.Is(err, sim.ErrInvalidTimestep) {
		http.Error(w, "dt must be positive", http.StatusBadRequest)
		return
	}
	if errors.Is(err, model.ErrTooManyTicks) {
		http.Error(w, fmt.Sprintf("budget/dt must not exceed %d ticks", req.MaxTicks), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)
}
