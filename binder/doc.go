// Package binder turns HTTP request bodies and query strings into
// validator.Input maps for the validation engine.
//
//	var in validator.Input
//	if err := binder.Input()(r, &in); err != nil {
//		return err
//	}
//
// Errors wrap ErrMissingContentType, ErrUnsupportedMediaType,
// ErrInvalidJSON, ErrInvalidForm or ErrBodyTooLarge.
package binder
