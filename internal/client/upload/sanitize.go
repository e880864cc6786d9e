package upload

import "regexp"

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	unsafeChars   = regexp.MustCompile(`[^\w.-]`)
)

// SanitizeFileName makes name URL-safe: each whitespace run (Unicode spaces
// included) becomes a single underscore, then every character outside [A-Za-z0-9_.-] is dropped.
// The result is idempotent: SanitizeFileName(SanitizeFileName(s)) equals
// SanitizeFileName(s).
func SanitizeFileName(name string) string {
	name = whitespaceRun.ReplaceAllString(name, "_")
	return unsafeChars.ReplaceAllString(name, "")
}
