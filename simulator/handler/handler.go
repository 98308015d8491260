package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rocket-sim/simulator/model"
	"rocket-sim/simulator/simulation"
)

var (
	// DefaultDt is used by StepHandler when the request carries no dt.
	DefaultDt = 1.0
	// Scenario is what ResetHandler restores.
	Scenario = simulation.DefaultScenario()
	// OnStep, if set, is called after every successful step once
	// simulation.Mutex has been released.
	OnStep func(snap simulation.Snapshot, landed []simulation.Landing)
)

// Step advances the current simulation by dt and reports the result.
func Step(dt float64) (simulation.Snapshot, []simulation.Landing, error) {
	simulation.Mutex.Lock()
	if err := simulation.Current.Step(dt); err != nil {
		simulation.Mutex.Unlock()
		return simulation.Snapshot{}, nil, err
	}
	snap := simulation.Current.Snapshot()
	landed := simulation.Current.Landed()
	simulation.Mutex.Unlock()

	if OnStep != nil {
		OnStep(snap, landed)
	}
	return snap, landed, nil
}

func GetPositionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	simulation.Mutex.Lock()
	snap := simulation.Current.Snapshot()
	simulation.Mutex.Unlock()

	writeJSON(w, http.StatusOK, snap.Bodies)
}

func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	simulation.Mutex.Lock()
	status := map[string]interface{}{
		"time":  simulation.Current.Time(),
		"count": simulation.Current.Len(),
	}
	simulation.Mutex.Unlock()

	writeJSON(w, http.StatusOK, status)
}

func StepHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	dt := DefaultDt
	if raw := r.URL.Query().Get("dt"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "dt must be a number", http.StatusBadRequest)
			return
		}
		dt = v
	}

	snap, landed, err := Step(dt)
	if errors.Is(err, model.ErrInvalidTimestep) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"time":   snap.Time,
		"count":  snap.Count,
		"landed": landed,
	})
}

// AddParticleRequest is the body accepted by AddParticleHandler.
type AddParticleRequest struct {
	Kind     model.Kind `json:"kind"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	VX       float64    `json:"vx"`
	VY       float64    `json:"vy"`
	Thrust   float64    `json:"thrust"`
	Duration float64    `json:"duration"`
}

func (req AddParticleRequest) body() (model.Body, error) {
	pos := model.Vec(req.X, req.Y)
	vel := model.Vec(req.VX, req.VY)
	switch req.Kind {
	case model.KindParticle, "":
		p := model.NewParticle(pos)
		p.Vel = vel
		return p, nil
	case model.KindRocket:
		if req.Duration < 0 {
			return nil, errors.New("duration must not be negative")
		}
		rk := model.NewRocket(pos, model.DefaultRocketConfig(req.Thrust, req.Duration))
		rk.Vel = vel
		return rk, nil
	default:
		return nil, errors.New("unknown kind " + strconv.Quote(string(req.Kind)))
	}
}

func AddParticleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AddParticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Y < 0 {
		http.Error(w, "y must not be negative", http.StatusBadRequest)
		return
	}
	b, err := req.body()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	simulation.Mutex.Lock()
	id := simulation.Current.AddParticle(b)
	simulation.Mutex.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id, "kind": b.Kind()})
}

func ResetHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	simulation.Mutex.Lock()
	simulation.InitSimulation(Scenario)
	simulation.Mutex.Unlock()

	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
