package web

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/imaging"
	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

const maxUploadBytes = 5 << 20

// WardrobePage handles GET /wardrobe.
func (s *Server) WardrobePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	items, err := store.ListItems(r.Context(), s.DB, claims.UserID, search, category)
	if err != nil {
		slog.Error("failed to list wardrobe", "error", err)
	}

	s.Templates.Render(w, "wardrobe.html", &struct {
		PageData
		Items    []model.ClothingItem
		Search   string
		Category string
	}{
		PageData: PageData{Title: "My Wardrobe", User: claims},
		Items:    items,
		Search:   search,
		Category: category,
	})
}

// WardrobeAddPage handles GET /wardrobe/add.
func (s *Server) WardrobeAddPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "wardrobe_add.html", &PageData{Title: "Add Item", User: claims})
}

// WardrobeAddSubmit handles POST /wardrobe/add. An uploaded photo is analyzed
// to fill in attributes the user left blank.
func (s *Server) WardrobeAddSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	render := func(msg string) {
		s.Templates.Render(w, "wardrobe_add.html", &PageData{Title: "Add Item", User: claims, Error: msg})
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		render("The photo is too large (5 MB max).")
		return
	}

	item := &model.ClothingItem{
		UserID:   claims.UserID,
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Color:    r.FormValue("color"),
		Season:   r.FormValue("season"),
		Occasion: r.FormValue("occasion"),
	}
	if item.Name == "" {
		render("Give the item a name.")
		return
	}

	var processed *imaging.ProcessResult
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			render("Could not read the photo.")
			return
		}
		processed, err = imaging.Process(data)
		if err != nil {
			render("The photo must be a JPEG, PNG or WebP image.")
			return
		}

		result := s.Advisor.ClassifyImage(r.Context(), processed.Data, processed.MIME)
		if item.Category == "" {
			item.Category = result.Category
		}
		if item.Color == "" {
			item.Color = result.Color
		}
		item.CelebTwin = result.CelebTwin
		item.StylingTip = result.StylingTip
	}

	if item.Category == "" {
		render("Pick a category or upload a photo.")
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, item)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		render("Something went wrong, please try again.")
		return
	}

	if processed != nil {
		if err := store.SetItemImage(r.Context(), s.DB, item.ID, claims.UserID, processed.Data, processed.MIME); err != nil {
			slog.Error("failed to save item image", "item", item.ID, "error", err)
		}
	}

	http.Redirect(w, r, "/wardrobe/"+strconv.FormatInt(item.ID, 10), http.StatusSeeOther)
}

// WardrobeDetailPage handles GET /wardrobe/{id}.
func (s *Server) WardrobeDetailPage(w http.ResponseWriter, r *http.Request) {
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

	s.Templates.Render(w, "wardrobe_detail.html", &struct {
		PageData
		Item *model.ClothingItem
	}{
		PageData: PageData{Title: item.Name, User: claims},
		Item:     item,
	})
}

// WardrobeUpdateSubmit handles POST /wardrobe/{id}.
func (s *Server) WardrobeUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	name := r.FormValue("name")
	category := r.FormValue("category")
	if name == "" || category == "" {
		http.Redirect(w, r, "/wardrobe/"+r.PathValue("id"), http.StatusSeeOther)
		return
	}

	err = store.UpdateItem(r.Context(), s.DB, id, claims.UserID, name, category,
		r.FormValue("color"), r.FormValue("season"), r.FormValue("occasion"))
	if err != nil {
		slog.Error("failed to update item", "error", err)
	}
	http.Redirect(w, r, "/wardrobe/"+r.PathValue("id"), http.StatusSeeOther)
}

// WardrobeDeleteSubmit handles POST /wardrobe/{id}/delete.
func (s *Server) WardrobeDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := store.DeleteItem(r.Context(), s.DB, id, claims.UserID); err != nil {
		slog.Error("failed to delete item", "error", err)
	}
	http.Redirect(w, r, "/wardrobe", http.StatusSeeOther)
}

// WardrobeImageGet handles GET /wardrobe/{id}/image.
func (s *Server) WardrobeImageGet(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), s.DB, id, claims.UserID)
	if err != nil {
		slog.Error("failed to get image", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}
