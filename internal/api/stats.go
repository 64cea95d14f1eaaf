package api

import (
	"database/sql"
	"net/http"

	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// StatsHandler handles sustainability statistics endpoints.
type StatsHandler struct {
	DB *sql.DB
}

type userStats struct {
	WardrobeSize int     `json:"wardrobe_size"`
	TotalWears   int     `json:"total_wears"`
	CO2SavedKg   float64 `json:"co2_saved_kg"`
	Donations    int     `json:"donations"`
	ImpactScore  int     `json:"impact_score"`
}

type adminStats struct {
	Users     int `json:"users"`
	Items     int `json:"items"`
	Donations int `json:"donations"`
}

// Me handles GET /api/stats. The CO2 estimate rewards re-wearing what you
// already own over buying new.
func (h *StatsHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID, "", "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load wardrobe")
		return
	}

	wears, err := store.TotalWears(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count wears")
		return
	}

	donations, err := store.ListDonations(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list donations")
		return
	}

	impact := 0
	for _, d := range donations {
		impact += d.ImpactScore
	}

	jsonResponse(w, http.StatusOK, userStats{
		WardrobeSize: len(items),
		TotalWears:   wears,
		CO2SavedKg:   float64(wears) * model.CO2PerWearKg,
		Donations:    len(donations),
		ImpactScore:  impact,
	})
}

// Admin handles GET /api/admin/stats (admin only).
func (h *StatsHandler) Admin(w http.ResponseWriter, r *http.Request) {
	users, err := store.CountUsers(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count users")
		return
	}
	items, err := store.CountItems(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count items")
		return
	}
	donations, err := store.CountDonations(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count donations")
		return
	}

	jsonResponse(w, http.StatusOK, adminStats{
		Users:     users,
		Items:     items,
		Donations: donations,
	})
}
