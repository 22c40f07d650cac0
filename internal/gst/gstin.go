// Package gst holds shared GST identifier checks.
package gst

import "regexp"

// GSTIN layout: 2-digit state code, 5 letters (PAN prefix), 4 digits,
// 1 letter, 1 entity code, literal Z, 1 checksum character. The checksum
// digit is matched structurally, not verified.
var gstinRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// IsValidGSTIN reports whether the value matches the 15-character GSTIN format.
func IsValidGSTIN(gstin string) bool {
	return gstinRegex.MatchString(gstin)
}

// IsValidStateCode reports whether the 2-digit state code is in the 01-38 range.
func IsValidStateCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	if code[0] < '0' || code[0] > '9' || code[1] < '0' || code[1] > '9' {
		return false
	}
	n := int(code[0]-'0')*10 + int(code[1]-'0')
	return n >= 1 && n <= 38
}

// StateCodeOf returns the embedded state code of a GSTIN, or "" when the
// value is too short to carry one.
func StateCodeOf(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}
