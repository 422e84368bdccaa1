package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"realestate-api/apperrors"
	"realestate-api/utils"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrSourceNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func kindName(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.ErrValidation:
		return "ValidationError"
	case apperrors.ErrStore:
		return "StoreError"
	case apperrors.ErrArithmetic:
		return "ArithmeticError"
	case apperrors.ErrParse:
		return "ParseError"
	case apperrors.ErrSourceNotFound:
		return "SourceNotFound"
	default:
		return "UnexpectedError"
	}
}

func respondError(w http.ResponseWriter, logger *utils.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("[api] %v", err)
	} else {
		logger.Warn("[api] %v", err)
	}
	respondJSON(w, status, errorBody{Error: kindName(err), Detail: err.Error()})
}
