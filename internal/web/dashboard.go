package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/outfit"
	"github.com/rewear-ai/rewear/internal/store"
	"github.com/rewear-ai/rewear/internal/weather"
)

type dashboardData struct {
	PageData
	Occasion     string
	Outfit       *outfit.Outfit
	Weather      *weather.Current
	NoOutfit     bool
	WardrobeSize int
	TotalWears   int
	CO2SavedKg   float64
	ImpactScore  int
}

// Dashboard handles GET /dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, nil, nil, false, "")
}

// SuggestSubmit handles POST /dashboard/suggest. Coordinates come from the
// browser's geolocation; without them the suggestion skips the weather check.
func (s *Server) SuggestSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	occasion := r.FormValue("occasion")
	if occasion == "" {
		occasion = "Casual"
	}

	var current *weather.Current
	var temp *int
	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.FormValue("lon"), 64)
	if latErr == nil && lonErr == nil {
		var err error
		current, err = s.Weather.Fetch(r.Context(), lat, lon)
		if err != nil {
			slog.Warn("weather lookup failed", "error", err)
		} else {
			temp = &current.Temp
		}
	}

	suggestion, err := s.Selector.Suggest(r.Context(), s.DB, claims.UserID, occasion, temp)
	if err != nil {
		slog.Error("outfit suggestion failed", "error", err)
		s.renderDashboard(w, r, nil, current, false, occasion)
		return
	}

	s.renderDashboard(w, r, suggestion, current, suggestion == nil, occasion)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, suggestion *outfit.Outfit, current *weather.Current, noOutfit bool, occasion string) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, claims.UserID, "", "")
	if err != nil {
		slog.Error("failed to list wardrobe for dashboard", "error", err)
	}
	wears, err := store.TotalWears(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to count wears", "error", err)
	}
	donations, err := store.ListDonations(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list donations", "error", err)
	}

	impact := 0
	for _, d := range donations {
		impact += d.ImpactScore
	}

	s.Templates.Render(w, "dashboard.html", &dashboardData{
		PageData:     PageData{Title: "Dashboard", User: claims},
		Occasion:     occasion,
		Outfit:       suggestion,
		Weather:      current,
		NoOutfit:     noOutfit,
		WardrobeSize: len(items),
		TotalWears:   wears,
		CO2SavedKg:   float64(wears) * model.CO2PerWearKg,
		ImpactScore:  impact,
	})
}
