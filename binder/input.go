package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/taskboard/pkg/validator"
)

const (
	// DefaultMaxBodySize caps JSON and urlencoded bodies.
	DefaultMaxBodySize = 1 << 20
	// DefaultMaxMemory is the in-memory part of multipart parsing.
	DefaultMaxMemory = 10 << 20
)

// Input returns a binder that decodes the request into *validator.Input.
//
//   - application/json: a top level object, numbers kept as json.Number.
//   - application/x-www-form-urlencoded and multipart/form-data: single
//     values become strings, blank values become nil, repeated keys and keys
//     ending in "[]" become []string.
//   - GET, HEAD and DELETE without a body: the query string, with the same
//     rules as forms.
//
// Values are left exactly as sent; conversion happens after validation
// through the validator.Input accessors.
func Input() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		target, ok := v.(*validator.Input)
		if !ok || target == nil {
			return ErrUnsupportedTarget
		}

		in, err := decode(r)
		if err != nil {
			return err
		}
		*target = in
		return nil
	}
}

func decode(r *http.Request) (validator.Input, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		if bodyless(r) {
			return fromValues(r.URL.Query()), nil
		}
		return nil, ErrMissingContentType
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/json":
		return decodeJSON(r)
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, DefaultMaxBodySize)
		if err := r.ParseForm(); err != nil {
			return nil, formError(err)
		}
		return fromValues(r.PostForm), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, formError(err)
		}
		return fromValues(r.MultipartForm.Value), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func bodyless(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return r.ContentLength <= 0
	}
	return false
}

func decodeJSON(r *http.Request) (validator.Input, error) {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, DefaultMaxBodySize))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidJSON)
	}
	return validator.Input(obj), nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrBodyTooLarge
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}

// fromValues flattens url.Values into Input.
func fromValues(values url.Values) validator.Input {
	in := make(validator.Input, len(values))
	for key, vals := range values {
		if name, ok := strings.CutSuffix(key, "[]"); ok {
			in[name] = append(listOf(in[name]), vals...)
			continue
		}
		switch len(vals) {
		case 0:
			in[key] = nil
		case 1:
			if strings.TrimSpace(vals[0]) == "" {
				in[key] = nil
			} else {
				in[key] = vals[0]
			}
		default:
			in[key] = vals
		}
	}
	return in
}

func listOf(v any) []string {
	if l, ok := v.([]string); ok {
		return l
	}
	return []string{}
}
