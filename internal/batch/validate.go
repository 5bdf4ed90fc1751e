package batch

import (
	"regexp"
	"strings"
)

// e164Pattern is the accepted phone number shape: a leading "+" followed by
// exactly 11 digits and nothing else.
var e164Pattern = regexp.MustCompile(`^\+\d{11}$`)

// ValidNumber reports whether the raw input line is a syntactically valid
// phone number. The line is trimmed before the check; no dialing-plan
// semantics (country code validity, reachability) are verified.
func ValidNumber(line string) bool {
	return e164Pattern.MatchString(strings.TrimSpace(line))
}
