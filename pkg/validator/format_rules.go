package validator

import (
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a date value.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// checkEmail requires a bare address (no display name) whose domain has at
// least one dot and no empty labels.
func checkEmail(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return true
	}
	s, ok := asString(f.Value)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// checkURL requires an absolute URL with scheme and host.
func checkURL(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return true
	}
	s, ok := asString(f.Value)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}

	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// checkDate requires a string that parses as a calendar date. Unlike the
// other format rules it fails on nil.
func checkDate(f FieldValue, _ []string) bool {
	s, ok := asString(f.Value)
	if !ok {
		return false
	}
	_, ok = parseDate(s)
	return ok
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
