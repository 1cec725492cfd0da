package domain

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a domain error to the status code the API surfaces it
// with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	var (
		notFound     *ErrNotFound
		validation   *ErrValidation
		insufficient *ErrInsufficientBalance
		conflict     *ErrConflict
		unauthorized *ErrUnauthorized
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &insufficient):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
