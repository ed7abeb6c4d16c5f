// Package sanitizer holds small string transforms applied to form input
// before validation: trimming, whitespace and e-mail normalisation, and
// cleanup of string lists.
//
// Transforms are plain functions and combine with Compose:
//
//	clean := sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.NormalizeWhitespace)
//	clean("  Launch\tplan \n") // "Launch plan"
//
// None of the helpers returns an error.
package sanitizer
