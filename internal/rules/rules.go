// Package rules loads the ordered (tag, regex) extraction rules from a YAML
// file. Order is meaning: within a tag, the first pattern that matches a
// document wins, so patterns keep their file order and tags keep document
// order for deterministic runs.
package rules

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/tendertools/tender-autofill/internal/schema"
)

// TagRules is one tag with its compiled patterns in priority order.
type TagRules struct {
	Tag      string
	Patterns []*regexp.Regexp
}

// Set is the full ordered rule set.
type Set struct {
	Tags []TagRules
}

// Load reads and compiles a tags YAML file. Patterns that fail to compile
// are logged and skipped; they never abort the run.
func Load(path string, logger *slog.Logger) (*Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tags file: %w", err)
	}
	return Parse(raw, logger)
}

// Parse compiles a tags YAML document of the form:
//
//	capacity_mw:
//	  - 'capacity[^0-9]{0,20}(?P<value>\d+(\.\d+)?)\s*MW'
//	emd_amount_rs:
//	  - 'EMD[^0-9]{0,40}(?P<value>[\d,]+)'
//
// Matching is case-insensitive and multiline; patterns get (?im) prepended.
func Parse(raw []byte, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse tags file: %w", err)
	}
	if len(doc.Content) == 0 {
		return &Set{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("tags file: top level must be a mapping of tag to pattern list")
	}

	set := &Set{}
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		tag := schema.NormalizeKey(keyNode.Value)
		if tag == "" {
			logger.Warn("rules.tag.unusable", "raw", keyNode.Value, "line", keyNode.Line)
			continue
		}
		if seen[tag] {
			logger.Warn("rules.tag.duplicate", "tag", tag, "line", keyNode.Line)
			continue
		}

		var patterns []string
		switch valNode.Kind {
		case yaml.SequenceNode:
			for _, item := range valNode.Content {
				patterns = append(patterns, item.Value)
			}
		case yaml.ScalarNode:
			patterns = []string{valNode.Value}
		default:
			logger.Warn("rules.tag.bad_value", "tag", tag, "line", valNode.Line)
			continue
		}

		tr := TagRules{Tag: tag}
		for _, pat := range patterns {
			re, err := regexp.Compile("(?im)" + pat)
			if err != nil {
				logger.Warn("rules.pattern.bad", "tag", tag, "pattern", pat, "error", err)
				continue
			}
			tr.Patterns = append(tr.Patterns, re)
		}
		if len(tr.Patterns) == 0 {
			logger.Warn("rules.tag.empty", "tag", tag)
			continue
		}
		seen[tag] = true
		set.Tags = append(set.Tags, tr)
	}
	return set, nil
}

// PatternCount returns the total number of compiled patterns.
func (s *Set) PatternCount() int {
	n := 0
	for _, t := range s.Tags {
		n += len(t.Patterns)
	}
	return n
}
