package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// DonationsHandler handles the donation ledger endpoints.
type DonationsHandler struct {
	DB *sql.DB
}

type donateRequest struct {
	ItemID      int64  `json:"item_id"`
	CharityName string `json:"charity_name"`
}

// Create handles POST /api/donations. A zero item id logs a generic clothing
// bundle; a positive id donates that wardrobe item, removing it from the
// wardrobe in the same transaction.
func (h *DonationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req donateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID < 0 {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	record, err := store.LogDonation(r.Context(), h.DB, claims.UserID, req.ItemID, req.CharityName)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			jsonError(w, http.StatusNotFound, "item not found in wardrobe")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to log donation")
		return
	}

	slog.Info("donation logged",
		"user", claims.Username,
		"item", record.ItemName,
		"charity", record.CharityName,
		"impact", record.ImpactScore)
	jsonResponse(w, http.StatusCreated, record)
}

// List handles GET /api/donations.
func (h *DonationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	records, err := store.ListDonations(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list donations")
		return
	}
	if records == nil {
		records = []model.DonationRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}
