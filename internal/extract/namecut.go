package extract

import (
	"regexp"
	"strings"
)

// statusToken matches trailing filer-status and withholding-rate tokens that
// some statement variants print after the security name, such as "NONFILER",
// "FILER", "15%" or "(30.00%)".
var statusToken = regexp.MustCompile(`(?i)^(?:NON-?FILER|FILER|\(?-?\d+(?:\.\d+)?%\)?)$`)

// CleanName removes trailing status tokens from a security name.
// Names without such tokens are returned unchanged.
func CleanName(name string) string {
	fields := strings.Split(name, " ")
	end := len(fields)
	for end > 0 && statusToken.MatchString(fields[end-1]) {
		end--
	}
	if end == len(fields) {
		return name
	}
	return strings.TrimSpace(strings.Join(fields[:end], " "))
}
