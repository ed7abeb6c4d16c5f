package validator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadMessages decodes a YAML catalog of message overrides. Keys are either
// flat "field.rule" strings or nested field → rule maps:
//
//	name.required: "Give the project a name."
//	password:
//	  min: "Passwords must be at least 8 characters."
func LoadMessages(r io.Reader) (Messages, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Messages{}, nil
		}
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	msgs := make(Messages, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			if !strings.Contains(key, ".") {
				return nil, fmt.Errorf("%w: key %q must be of the form field.rule", ErrInvalidCatalog, key)
			}
			msgs[key] = v
		case map[string]any:
			for rule, msg := range v {
				s, ok := msg.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %s.%s must be a string", ErrInvalidCatalog, key, rule)
				}
				msgs[MessageKey(key, rule)] = s
			}
		default:
			return nil, fmt.Errorf("%w: unsupported value for key %q", ErrInvalidCatalog, key)
		}
	}
	return msgs, nil
}

// LoadMessagesFile reads a catalog from path.
func LoadMessagesFile(path string) (Messages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	defer f.Close()
	return LoadMessages(f)
}
