package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocket-sim/forecast/model"
)

func TestForecastHandlerDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	ForecastHandler(rec, httptest.NewRequest(http.MethodGet, "/forecast", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p model.Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.True(t, p.Landed)
	assert.Equal(t, 83.0, p.LandingTime)
}

func TestForecastHandlerParams(t *testing.T) {
	rec := httptest.NewRecorder()
	ForecastHandler(rec, httptest.NewRequest(http.MethodGet, "/forecast?thrust=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p model.Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, 1, p.Ticks)
}

func TestForecastHandlerBadInput(t *testing.T) {
	for _, tc := range []struct {
		method, target string
		code           int
	}{
		{http.MethodPost, "/forecast", http.StatusMethodNotAllowed},
		{http.MethodGet, "/forecast?thrust=lots", http.StatusBadRequest},
		{http.MethodGet, "/forecast?dt=-1", http.StatusBadRequest},
		{http.MethodGet, "/forecast?dt=0", http.StatusBadRequest},
		{http.MethodGet, "/forecast?gravity=1&budget=1e18", http.StatusBadRequest},
		{http.MethodGet, "/forecast?dt=1e-9", http.StatusBadRequest},
		{http.MethodGet, "/forecast?budget=NaN", http.StatusBadRequest},
	} {
		rec := httptest.NewRecorder()
		ForecastHandler(rec, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.code, rec.Code, tc.target)
	}
}
