package autofix

import (
	"fmt"
	"regexp"
)

type datePattern struct {
	re *regexp.Regexp
	// submatch indexes of year, month and day
	y, m, d int
}

// Patterns are tried in order; the first match wins.
var datePatterns = []datePattern{
	// M/D/YYYY, month first
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), y: 3, m: 1, d: 2},
	// YYYY-M-D
	{re: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`), y: 1, m: 2, d: 3},
	// D-M-YYYY, day first
	{re: regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`), y: 3, m: 2, d: 1},
}

// NormalizeDate rewrites a date in one of the recognized layouts as
// YYYY-MM-DD with zero-padded month and day. Calendar validity is not
// checked here. Values matching no layout are returned unchanged.
func NormalizeDate(s string) string {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		return fmt.Sprintf("%s-%s-%s", m[p.y], pad2(m[p.m]), pad2(m[p.d]))
	}
	return s
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
