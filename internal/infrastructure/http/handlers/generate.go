package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/ports/outbound"
	apperrors "github.com/pantrychef/v1/pkg/errors"
)

// GenerateHandlers handles recipe generation requests
type GenerateHandlers struct {
	generator outbound.RecipeGenerator
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewGenerateHandlers creates a new generation handlers instance
func NewGenerateHandlers(generator outbound.RecipeGenerator, logger *zap.Logger) *GenerateHandlers {
	return &GenerateHandlers{
		generator: generator,
		validate:  validator.New(),
		logger:    logger,
	}
}

// GenerateRequest represents the generation payload
type GenerateRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

// Generate handles POST /generate-recipe
func (h *GenerateHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	// Reject empty or missing ingredient lists before any upstream I/O
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, h.logger, apperrors.NewBadRequestError("Invalid ingredients array"))
		return
	}

	result, err := h.generator.Generate(r.Context(), req.Ingredients)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
