package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform response shape: {success, message?, data?}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Pagination is attached to list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PagedData wraps a page of items with its pagination block.
type PagedData struct {
	Items any `json:"items"`
	Pagination
}

// NewPagination derives the page metadata from a total count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ParsePagination reads page/limit query parameters with sane bounds.
func ParsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// WriteJSON writes any payload with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondData writes a success envelope carrying data.
func RespondData(w http.ResponseWriter, statusCode int, data any) {
	WriteJSON(w, statusCode, Envelope{Success: true, Data: data})
}

// RespondMessage writes a success envelope carrying only a message.
func RespondMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Success: true, Message: message})
}

// RespondError writes a failure envelope.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Success: false, Message: message})
}

// RespondValidationError flattens validator errors into a failure envelope.
func RespondValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	var msg string
	for i, err := range errs {
		if i > 0 {
			msg += "; "
		}
		switch err.Tag() {
		case "required":
			msg += fmt.Sprintf("field %s is required", err.Field())
		case "email":
			msg += fmt.Sprintf("field %s must be a valid email address", err.Field())
		case "min":
			msg += fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param())
		case "max":
			msg += fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param())
		case "oneof":
			msg += fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param())
		default:
			msg += fmt.Sprintf("field %s is invalid", err.Field())
		}
	}
	RespondError(w, http.StatusBadRequest, msg)
}
