package handler

import (
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/taskboard/binder"
	"github.com/dmitrymomot/taskboard/pkg/rbac"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

const (
	validationMessage = "The given data was invalid."
	internalMessage   = "An error occurred processing your request."
)

// Classify maps err onto a status code and a client safe error detail.
// Messages of unrecognised errors are never exposed.
func Classify(err error) (int, *ErrorDetail) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    ErrUnprocessableEntity.Key,
			Message: validationMessage,
			Details: maps.Clone(map[string][]string(verrs)),
		}
	}

	switch {
	case errors.Is(err, validator.ErrUnauthorized),
		errors.Is(err, rbac.ErrInsufficientPermissions),
		errors.Is(err, rbac.ErrRoleNotInContext),
		errors.Is(err, rbac.ErrInvalidRole):
		return fromHTTPError(ErrForbidden)
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType):
		return fromHTTPError(ErrUnsupportedMediaType)
	case errors.Is(err, binder.ErrBodyTooLarge):
		return fromHTTPError(ErrRequestTooLarge)
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrInvalidForm):
		return http.StatusBadRequest, &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}
	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: internalMessage,
	}
}

func fromHTTPError(e HTTPError) (int, *ErrorDetail) {
	return e.Code, &ErrorDetail{Code: e.Key, Message: http.StatusText(e.Code)}
}
