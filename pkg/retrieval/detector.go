package retrieval

import (
	"regexp"
	"strings"
)

// Statute reference pattern. Recognizes, case-insensitively:
//   - Section 376
//   - Sec. 420
//   - u/s 302
//   - धारा 498A / कलम 498A
// Each keyword is followed by a 1-3 digit code with an optional single
// letter suffix ("498A").
var sectionPattern = regexp.MustCompile(`(?i)(?:section|sec\.?|u/s|धारा|कलम)\s*([0-9]{1,3}[a-zA-Z]?)`)

// DetectSections extracts explicit statute references from free text and
// returns the deduplicated set of normalized section codes. Letter suffixes
// are uppercased so "498a" and "498A" collapse to one entry. Pure function;
// result order is not significant.
func DetectSections(query string) []string {
	matches := sectionPattern.FindAllStringSubmatch(query, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var sections []string
	for _, m := range matches {
		code := strings.ToUpper(m[1])
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		sections = append(sections, code)
	}
	return sections
}
