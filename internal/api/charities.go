package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/charity"
	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// CharitiesHandler handles charity listing and discovery endpoints.
type CharitiesHandler struct {
	DB      *sql.DB
	Locator *charity.Locator
}

type createCharityRequest struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// Nearby handles GET /api/charities/nearby?lat=..&lon=.. Both coordinates are
// optional; without them only the verified list is returned.
func (h *CharitiesHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var lat, lon *float64
	if v, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64); err == nil {
		lat = &v
	}
	if v, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64); err == nil {
		lon = &v
	}

	candidates := h.Locator.FindNearby(r.Context(), lat, lon)
	if candidates == nil {
		candidates = []model.CharityCandidate{}
	}
	jsonResponse(w, http.StatusOK, candidates)
}

// List handles GET /api/charities.
func (h *CharitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	charities, err := store.ListCharities(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list charities")
		return
	}
	if charities == nil {
		charities = []model.Charity{}
	}
	jsonResponse(w, http.StatusOK, charities)
}

// Create handles POST /api/charities (admin only).
func (h *CharitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCharityRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	created, err := store.CreateCharity(r.Context(), h.DB, req.Name, req.Address, req.Phone, req.Lat, req.Lon)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create charity")
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}
