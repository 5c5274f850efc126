// Package handlers provides HTTP handlers for the API surface
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/pantrychef/v1/pkg/errors"
)

// errorBody is the JSON failure shape: {"error": msg} plus optional
// upstream diagnostics.
type errorBody struct {
	Error   string      `json:"error"`
	Details string      `json:"details,omitempty"`
	Ratings interface{} `json:"safetyRatings,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// writeError converts a service failure to a status + JSON body. Internal
// detail stays in the log; the client sees the message only.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := apperrors.Wrap(err, "Server error")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Cause))
	}

	body := errorBody{Error: appErr.Message}
	if appErr.Code == apperrors.CodeUpstreamError {
		body.Details = appErr.Details
	}
	if ratings, ok := appErr.Metadata["safetyRatings"]; ok {
		body.Ratings = ratings
	}

	writeJSON(w, logger, appErr.StatusCode(), body)
}
