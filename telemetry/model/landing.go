package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandingEvent is the payload published by the simulator on simulation.landed.
type LandingEvent struct {
	BodyID   int     `json:"body_id"`
	Kind     string  `json:"kind"`
	Time     float64 `json:"time"`
	Position Vector  `json:"position"`
	Velocity Vector  `json:"velocity"`
}

func DecodeLandingEvent(payload string) (LandingEvent, error) {
	var ev LandingEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return LandingEvent{}, fmt.Errorf("decode landing event: %w", err)
	}
	if ev.Kind == "" {
		return LandingEvent{}, fmt.Errorf("decode landing event: missing kind")
	}
	return ev, nil
}

// Record is the flight log representation of a landing.
func (ev LandingEvent) Record() map[string]interface{} {
	return map[string]interface{}{
		"body_id": ev.BodyID,
		"kind":    ev.Kind,
		"time":    ev.Time,
		"x":       ev.Position.X,
		"y":       ev.Position.Y,
		"vx":      ev.Velocity.X,
		"vy":      ev.Velocity.Y,
	}
}

// URLResolver finds the base URL of a named service.
type URLResolver interface {
	ServiceURL(ctx context.Context, serviceName string) (string, error)
}

// Forwarder posts landing records to the flight log service.
type Forwarder struct {
	Resolver URLResolver
	Client   *http.Client
	Attempts int
	Backoff  time.Duration
}

func NewForwarder(r URLResolver) *Forwarder {
	return &Forwarder{
		Resolver: r,
		Client:   &http.Client{Timeout: 5 * time.Second},
		Attempts: 3,
		Backoff:  500 * time.Millisecond,
	}
}

// Forward stores ev in the flight log, retrying transport and server errors.
func (f *Forwarder) Forward(ctx context.Context, ev LandingEvent) error {
	body, err := json.Marshal(ev.Record())
	if err != nil {
		return err
	}

	url, err := f.Resolver.ServiceURL(ctx, "flightlog")
	if err != nil {
		return fmt.Errorf("could not discover flight log service: %w", err)
	}

	var lastErr error
	for i := 0; i < f.Attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(f.Backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/landings", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.Client.Do(req)
		if err != nil {
			lastErr = err
			log.Printf("⚠️ Failed to send landing (attempt %d): %v", i+1, err)
			continue
		}
		resp.Body.Close()
		switch {
		case resp.StatusCode < 300:
			log.Printf("✅ Landing of body %d recorded at t=%g", ev.BodyID, ev.Time)
			return nil
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("flight log returned %s", resp.Status)
			log.Printf("⚠️ Failed to send landing (attempt %d): %v", i+1, lastErr)
		default:
			return fmt.Errorf("flight log rejected landing: %s", resp.Status)
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", f.Attempts, lastErr)
}
