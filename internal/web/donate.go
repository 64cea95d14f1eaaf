package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// DonatePage handles GET /donate. Coordinates arrive as query parameters from
// the browser's geolocation; without them only verified partners are shown.
func (s *Server) DonatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	var lat, lon *float64
	if v, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64); err == nil {
		lat = &v
	}
	if v, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64); err == nil {
		lon = &v
	}

	candidates := s.Locator.FindNearby(r.Context(), lat, lon)

	items, err := store.ListItems(r.Context(), s.DB, claims.UserID, "", "")
	if err != nil {
		slog.Error("failed to list wardrobe for donation", "error", err)
	}

	history, err := store.ListDonations(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list donations", "error", err)
	}

	s.Templates.Render(w, "donate.html", &struct {
		PageData
		Candidates []model.CharityCandidate
		Items      []model.ClothingItem
		History    []model.DonationRecord
		Located    bool
	}{
		PageData:   PageData{Title: "Donate", User: claims},
		Candidates: candidates,
		Items:      items,
		History:    history,
		Located:    lat != nil && lon != nil,
	})
}

// DonateSubmit handles POST /donate. An item id of zero logs a generic
// clothing bundle.
func (s *Server) DonateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	itemID, _ := strconv.ParseInt(r.FormValue("item_id"), 10, 64)
	charityName := r.FormValue("charity_name")

	record, err := store.LogDonation(r.Context(), s.DB, claims.UserID, itemID, charityName)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			http.Redirect(w, r, "/donate", http.StatusSeeOther)
			return
		}
		slog.Error("failed to log donation", "error", err)
		http.Redirect(w, r, "/donate", http.StatusSeeOther)
		return
	}

	slog.Info("donation logged",
		"user", claims.Username,
		"item", record.ItemName,
		"charity", record.CharityName,
		"impact", record.ImpactScore)
	http.Redirect(w, r, "/donate/success/"+strconv.FormatInt(record.ID, 10), http.StatusSeeOther)
}

// DonateSuccessPage handles GET /donate/success/{id}.
func (s *Server) DonateSuccessPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	record, err := store.GetDonation(r.Context(), s.DB, id, claims.UserID)
	if err != nil {
		slog.Error("failed to get donation", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if record == nil {
		http.NotFound(w, r)
		return
	}

	s.Templates.Render(w, "donate_success.html", &struct {
		PageData
		Record *model.DonationRecord
	}{
		PageData: PageData{Title: "Thank you!", User: claims},
		Record:   record,
	})
}
