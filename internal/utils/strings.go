package utils

import (
	"strings"
	"unicode"
)

// SplitTrimmed splits a comma-separated value into its trimmed parts,
// dropping empty entries and preserving order.  It is used for the stored
// delivery pincode list and for the ADMIN_EMAILS allowlist.
func SplitTrimmed(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Slugify turns a display name into a URL-safe slug: lowercase, letters and
// digits kept, runs of anything else collapsed into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
