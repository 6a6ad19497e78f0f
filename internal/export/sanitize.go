package export

import (
	"regexp"
	"strings"
)

var illegalIdentChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizePropertyName replaces every character outside [A-Za-z0-9_] with '_'.
func SanitizePropertyName(name string) string {
	return illegalIdentChars.ReplaceAllString(name, "_")
}

// SanitizeRelationshipName sanitizes like SanitizePropertyName and uppercases.
func SanitizeRelationshipName(name string) string {
	return strings.ToUpper(SanitizePropertyName(name))
}

// quoteIdent backtick-quotes sanitized identifiers that Cypher would
// otherwise parse as a number.
func quoteIdent(name string) string {
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return "`" + name + "`"
	}
	return name
}
