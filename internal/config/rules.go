package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RuleFor returns the input rule governing the given project-relative path
// (slash separated). When several rules match, the rule with the deepest
// base path wins; among rules of equal depth, the one declared last wins.
// This gives "nearest enclosing rule wins" inheritance for per-input
// settings.
func (c *Config) RuleFor(rel string) (InputRule, bool) {
	rel = strings.TrimPrefix(rel, "./")

	best := -1
	bestDepth := -1
	for i, rule := range c.Inputs {
		matched, err := doublestar.Match(rule.Glob, rel)
		if err != nil || !matched {
			continue
		}
		depth := baseDepth(rule.BasePath)
		if depth >= bestDepth {
			best = i
			bestDepth = depth
		}
	}
	if best < 0 {
		return InputRule{}, false
	}
	return c.Inputs[best], true
}

func baseDepth(basePath string) int {
	if basePath == "" {
		return 0
	}
	return strings.Count(basePath, "/") + 1
}
