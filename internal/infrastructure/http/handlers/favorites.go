package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/application/favorites"
	"github.com/pantrychef/v1/internal/infrastructure/http/middleware"
	apperrors "github.com/pantrychef/v1/pkg/errors"
)

// FavoritesHandlers handles the session-gated favorites CRUD endpoints
type FavoritesHandlers struct {
	service  *favorites.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewFavoritesHandlers creates a new favorites handlers instance
func NewFavoritesHandlers(service *favorites.Service, logger *zap.Logger) *FavoritesHandlers {
	return &FavoritesHandlers{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// AddFavoriteRequest represents the save-favorite payload
type AddFavoriteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// List handles GET /favorites
func (h *FavoritesHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("You must be logged in."))
		return
	}

	favs, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, favs)
}

// Add handles POST /favorites
func (h *FavoritesHandlers) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("You must be logged in."))
		return
	}

	req, err := h.decodeAdd(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.service.Add(r.Context(), userID, req.Title, req.Content); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]bool{"success": true})
}

// Remove handles DELETE /favorites/{id}
func (h *FavoritesHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}

	// An id that cannot be a favorite's id is simply absent; removal of
	// an absent favorite succeeds.
	favoriteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, h.logger, http.StatusOK, map[string]bool{"success": true})
		return
	}

	if err := h.service.Remove(r.Context(), userID, favoriteID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]bool{"success": true})
}

// decodeAdd accepts the payload as JSON or an urlencoded form, matching
// the two body parsers the frontend submits with.
func (h *FavoritesHandlers) decodeAdd(r *http.Request) (*AddFavoriteRequest, error) {
	var req AddFavoriteRequest

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, apperrors.NewBadRequestError("Invalid JSON payload")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, apperrors.NewBadRequestError("Invalid form payload")
		}
		req.Title = r.PostFormValue("title")
		req.Content = r.PostFormValue("content")
	}

	if err := h.validate.Struct(&req); err != nil {
		return nil, apperrors.NewBadRequestError("Title and content required.")
	}
	return &req, nil
}
