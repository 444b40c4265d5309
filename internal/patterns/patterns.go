// Package patterns decides which filesystem entries are excluded, reinstated, or collapsed.
package patterns

import (
	"regexp"
	"strings"
)

const (
	// NegationPrefix marks a rule that reinstates entries matched by an exclude rule.
	NegationPrefix = "!"
	// DirectorySuffix is appended to directory forms before matching.
	DirectorySuffix = "/"
)

// RuleKind distinguishes exclude rules from negate rules.
type RuleKind int

const (
	// RuleKindExclude omits matching entries.
	RuleKindExclude RuleKind = iota
	// RuleKindNegate reinstates excluded entries.
	RuleKindNegate
)

// String returns a readable name for the rule kind.
func (kind RuleKind) String() string {
	if kind == RuleKindNegate {
		return "negate"
	}
	return "exclude"
}

// Rule is a single glob expression tagged with its kind.
type Rule struct {
	Pattern string
	Kind    RuleKind
}

// ParseRule classifies a raw pattern. Leading negation marks are stripped.
func ParseRule(rawPattern string) Rule {
	if strings.HasPrefix(rawPattern, NegationPrefix) {
		return Rule{Pattern: strings.TrimLeft(rawPattern, NegationPrefix), Kind: RuleKindNegate}
	}
	return Rule{Pattern: rawPattern, Kind: RuleKindExclude}
}

// Entry is a filesystem entry presented for a decision.
type Entry struct {
	Name         string
	ResolvedPath string
	IsDirectory  bool
}

// PatternSet holds exclude, negate, and collapse rules. It is immutable after
// construction and safe for concurrent use.
type PatternSet struct {
	excludes  []string
	negates   []string
	collapses []string
	compiled  map[string]*regexp.Regexp
}

// NewPatternSet builds a set from caller patterns followed by ignore-file patterns.
// Collapse patterns carry no negation semantics and are stored verbatim.
func NewPatternSet(callerPatterns []string, filePatterns []string, collapsePatterns []string) *PatternSet {
	patternSet := &PatternSet{
		collapses: append([]string(nil), collapsePatterns...),
		compiled:  make(map[string]*regexp.Regexp),
	}

	for _, rawPattern := range append(append([]string(nil), callerPatterns...), filePatterns...) {
		rule := ParseRule(rawPattern)
		if rule.Kind == RuleKindNegate {
			patternSet.negates = append(patternSet.negates, rule.Pattern)
		} else {
			patternSet.excludes = append(patternSet.excludes, rule.Pattern)
		}
	}

	for _, group := range [][]string{patternSet.excludes, patternSet.negates, patternSet.collapses} {
		for _, pattern := range group {
			if _, exists := patternSet.compiled[pattern]; !exists {
				patternSet.compiled[pattern] = compileGlob(pattern)
			}
		}
	}
	return patternSet
}

// Excludes returns a copy of the exclude patterns.
func (patternSet *PatternSet) Excludes() []string {
	return append([]string(nil), patternSet.excludes...)
}

// Negates returns a copy of the negate patterns with the prefix stripped.
func (patternSet *PatternSet) Negates() []string {
	return append([]string(nil), patternSet.negates...)
}

// Collapses returns a copy of the collapse patterns.
func (patternSet *PatternSet) Collapses() []string {
	return append([]string(nil), patternSet.collapses...)
}

// ShouldIgnore reports whether any exclude rule matches the entry and no
// negate rule reinstates it. Rule order within a kind does not matter.
func (patternSet *PatternSet) ShouldIgnore(entry Entry) bool {
	if patternSet == nil {
		return false
	}
	if !patternSet.anyMatch(patternSet.excludes, entry) {
		return false
	}
	return !patternSet.anyMatch(patternSet.negates, entry)
}

// ShouldCollapse reports whether the entry is a collapse boundary. The entry is
// always treated as a directory.
func (patternSet *PatternSet) ShouldCollapse(entry Entry) bool {
	if patternSet == nil {
		return false
	}
	entry.IsDirectory = true
	return patternSet.anyMatch(patternSet.collapses, entry)
}

func (patternSet *PatternSet) anyMatch(patternList []string, entry Entry) bool {
	for _, pattern := range patternList {
		expression, cached := patternSet.compiled[pattern]
		if !cached {
			expression = compileGlob(pattern)
		}
		if matchesAnyForm(expression, Forms(entry.Name, entry.ResolvedPath, entry.IsDirectory, pattern)) {
			return true
		}
	}
	return false
}

// Forms derives the strings a pattern is tested against. Patterns containing a
// slash anchor against the resolved path; the slash-suffixed name form is kept
// for them too so that "data/" still matches a directory named data anywhere.
// Patterns without a slash test only the name forms.
func Forms(name string, resolvedPath string, isDirectory bool, pattern string) []string {
	if strings.Contains(pattern, DirectorySuffix) {
		if !isDirectory {
			return []string{resolvedPath}
		}
		return []string{resolvedPath, resolvedPath + DirectorySuffix, name + DirectorySuffix}
	}
	if !isDirectory {
		return []string{name}
	}
	return []string{name, name + DirectorySuffix}
}

// Matches reports whether a single glob pattern matches any form of the entry.
func Matches(name string, resolvedPath string, isDirectory bool, pattern string) bool {
	return matchesAnyForm(compileGlob(pattern), Forms(name, resolvedPath, isDirectory, pattern))
}

func matchesAnyForm(expression *regexp.Regexp, forms []string) bool {
	for _, form := range forms {
		if expression.MatchString(form) {
			return true
		}
	}
	return false
}
