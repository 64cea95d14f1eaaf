package api

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rewear-ai/rewear/internal/advisor"
	"github.com/rewear-ai/rewear/internal/imaging"
	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// maxUploadBytes limits clothing photo uploads.
const maxUploadBytes = 5 << 20

// WardrobeHandler handles clothing item endpoints.
type WardrobeHandler struct {
	DB      *sql.DB
	Advisor *advisor.Advisor
}

type updateItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Season   string `json:"season"`
	Occasion string `json:"occasion"`
}

// List handles GET /api/wardrobe.
func (h *WardrobeHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	items, err := store.ListItems(r.Context(), h.DB, claims.UserID, search, category)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.ClothingItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/wardrobe. The request is a multipart form with the
// item fields and an optional photo. When a photo is present it is analyzed
// to fill in any attributes the user left blank, plus the style extras.
func (h *WardrobeHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
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
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	var processed *imaging.ProcessResult
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to read image")
			return
		}
		processed, err = imaging.Process(data)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}

		result := h.Advisor.ClassifyImage(r.Context(), processed.Data, processed.MIME)
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
		jsonError(w, http.StatusBadRequest, "category required")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, item)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	if processed != nil {
		if err := store.SetItemImage(r.Context(), h.DB, item.ID, claims.UserID, processed.Data, processed.MIME); err != nil {
			slog.Error("saving item image", "item", item.ID, "error", err)
		} else {
			item.ImageMime = processed.MIME
		}
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/wardrobe/{id}.
func (h *WardrobeHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetUserItem(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/wardrobe/{id}.
func (h *WardrobeHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Category == "" {
		jsonError(w, http.StatusBadRequest, "name and category required")
		return
	}

	existing, err := store.GetUserItem(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, claims.UserID, req.Name, req.Category, req.Color, req.Season, req.Occasion); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	item, _ := store.GetUserItem(r.Context(), h.DB, id, claims.UserID)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/wardrobe/{id}.
func (h *WardrobeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	existing, err := store.GetUserItem(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id, claims.UserID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/wardrobe/{id}/image.
func (h *WardrobeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	processed, err := imaging.Process(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := store.GetUserItem(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, claims.UserID, processed.Data, processed.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/wardrobe/{id}/image.
func (h *WardrobeHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// Upcycle handles POST /api/wardrobe/{id}/upcycle.
func (h *WardrobeHandler) Upcycle(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetUserItem(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	recipe := h.Advisor.SuggestUpcycle(r.Context(), item.Category, item.Color)
	jsonResponse(w, http.StatusOK, recipe)
}
