package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// AdminPage handles GET /admin. Only administrators see it.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !claimsAdmin(claims.Role) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	users, err := store.CountUsers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to count users", "error", err)
	}
	items, err := store.CountItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to count items", "error", err)
	}
	donations, err := store.CountDonations(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to count donations", "error", err)
	}
	charities, err := store.ListCharities(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list charities", "error", err)
	}

	s.Templates.Render(w, "admin.html", &struct {
		PageData
		Users     int
		Items     int
		Donations int
		Charities []model.Charity
	}{
		PageData:  PageData{Title: "Administration", User: claims},
		Users:     users,
		Items:     items,
		Donations: donations,
		Charities: charities,
	})
}

// AdminCharitySubmit handles POST /admin/charities.
func (s *Server) AdminCharitySubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !claimsAdmin(claims.Role) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	var lat, lon *float64
	if v, err := strconv.ParseFloat(r.FormValue("lat"), 64); err == nil {
		lat = &v
	}
	if v, err := strconv.ParseFloat(r.FormValue("lon"), 64); err == nil {
		lon = &v
	}

	_, err := store.CreateCharity(r.Context(), s.DB, name, r.FormValue("address"), r.FormValue("phone"), lat, lon)
	if err != nil {
		slog.Error("failed to create charity", "error", err)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func claimsAdmin(role string) bool {
	return role == model.RoleAdmin
}
