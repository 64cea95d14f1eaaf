package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/advisor"
	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// UpcyclePage handles GET /wardrobe/{id}/upcycle, generating a creative
// second life for a worn-out garment.
func (s *Server) UpcyclePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := store.GetUserItem(r.Context(), s.DB, id, claims.UserID)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	recipe := s.Advisor.SuggestUpcycle(r.Context(), item.Category, item.Color)

	s.Templates.Render(w, "upcycle.html", &struct {
		PageData
		Item   *model.ClothingItem
		Recipe advisor.Recipe
	}{
		PageData: PageData{Title: "Upcycle " + item.Name, User: claims},
		Item:     item,
		Recipe:   recipe,
	})
}
