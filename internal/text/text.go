// Package text holds the pure string helpers shared by the command
// grammar and the note store: whitespace normalization and hashtag
// extraction. No I/O lives here.
package text

import (
	"regexp"
	"sort"
	"strings"
)

// Tags are letters, digits, and underscore. Accented letters count:
// "#súper" is one tag, not "#s".
var tagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// Normalize collapses runs of whitespace and trims the input. It
// returns two forms of the same string: folded (lower-cased, used for
// command matching) and preserved (original casing, used for stored
// payloads). Empty input yields empty strings.
func Normalize(raw string) (folded, preserved string) {
	preserved = strings.Join(strings.Fields(raw), " ")
	folded = strings.ToLower(preserved)
	return folded, preserved
}

// Tags scans s for #word tokens and returns the tags with the '#'
// stripped, lower-cased, deduplicated, and sorted. The sort keeps the
// stored tag column deterministic.
func Tags(s string) []string {
	matches := tagPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var tags []string
	for _, m := range matches {
		tag := strings.ToLower(m[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
