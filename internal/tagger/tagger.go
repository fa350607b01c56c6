// Package tagger applies the ordered regex rules to document text.
package tagger

import (
	"regexp"
	"strings"

	"github.com/tendertools/tender-autofill/internal/rules"
)

var spaceRuns = regexp.MustCompile("[ \t ]+")

// NormalizeSpace folds CR into LF, collapses NBSP/tab/space runs to a single
// space and trims. Applied to document text before matching and to every
// extracted value.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(spaceRuns.ReplaceAllString(strings.ReplaceAll(s, "\r", "\n"), " "))
}

// Values maps normalized tag keys to their extracted strings.
type Values map[string]string

// Extract runs every tag's patterns against the text. The first pattern that
// matches wins the tag; later patterns for that tag are not tried. A named
// group "value" narrows the captured text, otherwise the whole match is kept.
func Extract(text string, set *rules.Set) Values {
	text = NormalizeSpace(text)
	out := Values{}
	for _, tr := range set.Tags {
		for _, re := range tr.Patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			val := m[0]
			if idx := re.SubexpIndex("value"); idx >= 0 && idx < len(m) && m[idx] != "" {
				val = m[idx]
			}
			out[tr.Tag] = NormalizeSpace(val)
			break
		}
	}
	return out
}

// SetDefault stores val under tag only when the tag is still unset.
func (v Values) SetDefault(tag, val string) {
	if _, ok := v[tag]; !ok {
		v[tag] = val
	}
}
