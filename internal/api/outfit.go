package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/outfit"
	"github.com/rewear-ai/rewear/internal/weather"
)

// OutfitHandler handles outfit suggestion and weather endpoints.
type OutfitHandler struct {
	DB       *sql.DB
	Selector *outfit.Selector
	Weather  *weather.Client
}

type suggestRequest struct {
	Occasion string   `json:"occasion"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}

type suggestResponse struct {
	Outfit  *outfit.Outfit   `json:"outfit"`
	Weather *weather.Current `json:"weather,omitempty"`
}

// Suggest handles POST /api/outfit/suggest. When coordinates are provided the
// current weather decides whether the outfit includes outerwear; without them
// (or when the provider is unreachable) the suggestion proceeds without a
// temperature.
func (h *OutfitHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Occasion == "" {
		jsonError(w, http.StatusBadRequest, "occasion required")
		return
	}

	var current *weather.Current
	var temp *int
	if req.Lat != nil && req.Lon != nil {
		var err error
		current, err = h.Weather.Fetch(r.Context(), *req.Lat, *req.Lon)
		if err != nil {
			slog.Warn("weather lookup failed, suggesting without temperature", "error", err)
		} else {
			temp = &current.Temp
		}
	}

	suggestion, err := h.Selector.Suggest(r.Context(), h.DB, claims.UserID, req.Occasion, temp)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to suggest outfit")
		return
	}
	if suggestion == nil {
		jsonError(w, http.StatusNotFound, "not enough items for a full outfit")
		return
	}

	jsonResponse(w, http.StatusOK, suggestResponse{Outfit: suggestion, Weather: current})
}

// GetWeather handles GET /api/weather?lat=..&lon=..
func (h *OutfitHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid lat")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid lon")
		return
	}

	current, err := h.Weather.Fetch(r.Context(), lat, lon)
	if err != nil {
		jsonError(w, http.StatusBadGateway, "weather lookup failed")
		return
	}
	jsonResponse(w, http.StatusOK, current)
}
