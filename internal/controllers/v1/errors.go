package v1

import (
	"errors"
	"net/http"

	"github.com/spendsense/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the HTTP status for an error from the models layer.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrInvalidState) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errUserParameterRequired = errors.New("the user query parameter must be set")
	errChunkSizeInvalid      = errors.New("the chunkSize parameter must be greater than 0")
	errChunkIndexInvalid     = errors.New("the chunkIndex parameter must not be negative")
)
