package sanitizer

import "strings"

func TrimStringSlice(slice []string) []string {
	out := make([]string, len(slice))
	for i, s := range slice {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func ToLowerStringSlice(slice []string) []string {
	out := make([]string, len(slice))
	for i, s := range slice {
		out[i] = strings.ToLower(s)
	}
	return out
}

// FilterEmpty drops empty strings.
func FilterEmpty(slice []string) []string {
	out := make([]string, 0, len(slice))
	for _, s := range slice {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DeduplicateStrings keeps the first occurrence of each value.
func DeduplicateStrings(slice []string) []string {
	seen := make(map[string]struct{}, len(slice))
	out := make([]string, 0, len(slice))
	for _, s := range slice {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// CleanStringSlice trims, drops empties and deduplicates.
func CleanStringSlice(slice []string) []string {
	return Apply(slice,
		TrimStringSlice,
		FilterEmpty,
		DeduplicateStrings,
	)
}
