package sanitizer

import "strings"

// NormalizeEmail trims and lower-cases an address and collapses repeated
// dots in the local part. Values without exactly one "@" are only trimmed
// and lower-cased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	for strings.Contains(local, "..") {
		local = strings.ReplaceAll(local, "..", ".")
	}
	local = strings.Trim(local, ".")
	return local + "@" + domain
}
