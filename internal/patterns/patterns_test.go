package patterns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/twig/internal/patterns"
)

const (
	dataDirectoryName = "data"
	dataDirectoryPath = "/var/data"
	dataFileName      = "xx1.txt"
	dataFilePath      = "/var/data/xx1.txt"
	nestedName        = "more"
	nestedPath        = "/var/data/more"
)

func TestParseRule(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected patterns.Rule
	}{
		{name: "exclude", input: "*.txt", expected: patterns.Rule{Pattern: "*.txt", Kind: patterns.RuleKindExclude}},
		{name: "negate", input: "!.idea", expected: patterns.Rule{Pattern: ".idea", Kind: patterns.RuleKindNegate}},
		{name: "repeated_negation_marks", input: "!!data/", expected: patterns.Rule{Pattern: "data/", Kind: patterns.RuleKindNegate}},
		{name: "empty", input: "", expected: patterns.Rule{Pattern: "", Kind: patterns.RuleKindExclude}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, patterns.ParseRule(testCase.input))
		})
	}
}

func TestForms(t *testing.T) {
	testCases := []struct {
		name        string
		entryName   string
		path        string
		isDirectory bool
		pattern     string
		expected    []string
	}{
		{name: "file_name_pattern", entryName: dataFileName, path: dataFilePath, pattern: "*.txt", expected: []string{dataFileName}},
		{name: "directory_name_pattern", entryName: dataDirectoryName, path: dataDirectoryPath, isDirectory: true, pattern: "data", expected: []string{"data", "data/"}},
		{name: "file_path_pattern", entryName: dataFileName, path: dataFilePath, pattern: "*/data/*", expected: []string{dataFilePath}},
		{name: "directory_path_pattern", entryName: dataDirectoryName, path: dataDirectoryPath, isDirectory: true, pattern: "*/data", expected: []string{"/var/data", "/var/data/", "data/"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, patterns.Forms(testCase.entryName, testCase.path, testCase.isDirectory, testCase.pattern))
		})
	}
}

func TestMatches(t *testing.T) {
	testCases := []struct {
		name        string
		entryName   string
		path        string
		isDirectory bool
		pattern     string
		expected    bool
	}{
		{name: "star_extension", entryName: dataFileName, path: dataFilePath, pattern: "*.txt", expected: true},
		{name: "exact_name_only", entryName: "data.txt", path: "/var/data.txt", pattern: "data", expected: false},
		{name: "trailing_slash_matches_directory_name", entryName: dataDirectoryName, path: dataDirectoryPath, isDirectory: true, pattern: "data/", expected: true},
		{name: "trailing_slash_skips_file", entryName: dataDirectoryName, path: dataDirectoryPath, pattern: "data/", expected: false},
		{name: "star_crosses_separators", entryName: dataDirectoryName, path: dataDirectoryPath, isDirectory: true, pattern: "*/data", expected: true},
		{name: "contents_pattern_skips_bare_directory_path", entryName: dataDirectoryName, path: dataDirectoryPath, pattern: "*/data/*", expected: false},
		{name: "contents_pattern_matches_directory_slash_form", entryName: dataDirectoryName, path: dataDirectoryPath, isDirectory: true, pattern: "*/data/*", expected: true},
		{name: "contents_pattern_matches_child", entryName: dataFileName, path: dataFilePath, pattern: "*/data/*", expected: true},
		{name: "name_pattern_ignores_parent_path", entryName: dataFileName, path: dataFilePath, pattern: "data", expected: false},
		{name: "question_mark", entryName: "xx1.txt", path: dataFilePath, pattern: "xx?.txt", expected: true},
		{name: "character_class", entryName: "xx1.txt", path: dataFilePath, pattern: "xx[0-9].txt", expected: true},
		{name: "negated_character_class", entryName: "xx1.txt", path: dataFilePath, pattern: "xx[!0-9].txt", expected: false},
		{name: "unterminated_class_is_literal", entryName: "[abc", path: "/var/[abc", pattern: "[abc", expected: true},
		{name: "regex_metacharacters_are_literal", entryName: "a+b.txt", path: "/var/a+b.txt", pattern: "a+b.txt", expected: true},
		{name: "case_sensitive", entryName: "Data", path: "/var/Data", isDirectory: true, pattern: "data", expected: false},
		{name: "reversed_range_matches_nothing", entryName: "x", path: "/var/x", pattern: "[z-a]", expected: false},
		{name: "reversed_range_is_not_literal", entryName: "[z-a]", path: "/var/[z-a]", pattern: "[z-a]", expected: false},
		{name: "reversed_range_keeps_other_members", entryName: "b", path: "/var/b", pattern: "[z-ab]", expected: true},
		{name: "reversed_range_drops_its_bounds", entryName: "z", path: "/var/z", pattern: "[z-ab]", expected: false},
		{name: "negated_reversed_range_matches_any_character", entryName: "q", path: "/var/q", pattern: "[!z-a]", expected: true},
		{name: "trailing_hyphen_is_literal", entryName: "-", path: "/var/-", pattern: "[a-]", expected: true},
		{name: "leading_bracket_is_member", entryName: "]", path: "/var/]", pattern: "[]a]", expected: true},
		{name: "caret_is_member", entryName: "^", path: "/var/^", pattern: "[^a]", expected: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := patterns.Matches(testCase.entryName, testCase.path, testCase.isDirectory, testCase.pattern)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestNewPatternSetClassifiesRules(t *testing.T) {
	patternSet := patterns.NewPatternSet([]string{"*.log", "!keep.log"}, []string{".git", "!.gitignore"}, []string{"vendor/"})

	assert.Equal(t, []string{"*.log", ".git"}, patternSet.Excludes())
	assert.Equal(t, []string{"keep.log", ".gitignore"}, patternSet.Negates())
	assert.Equal(t, []string{"vendor/"}, patternSet.Collapses())
}

func TestShouldIgnoreKeepsDirectoryButHidesContents(t *testing.T) {
	patternSet := patterns.NewPatternSet([]string{"*/data/*", "!*/data/"}, nil, nil)

	directoryEntry := patterns.Entry{Name: dataDirectoryName, ResolvedPath: dataDirectoryPath, IsDirectory: true}
	fileEntry := patterns.Entry{Name: dataFileName, ResolvedPath: dataFilePath}
	nestedEntry := patterns.Entry{Name: nestedName, ResolvedPath: nestedPath, IsDirectory: true}

	require.False(t, patternSet.ShouldIgnore(directoryEntry))
	require.True(t, patternSet.ShouldIgnore(fileEntry))
	require.True(t, patternSet.ShouldIgnore(nestedEntry))
}

func TestShouldIgnoreIsOrderIndependent(t *testing.T) {
	entry := patterns.Entry{Name: ".idea", ResolvedPath: "/var/.idea", IsDirectory: true}
	forward := patterns.NewPatternSet([]string{".idea", "!.idea"}, nil, nil)
	reversed := patterns.NewPatternSet([]string{"!.idea", ".idea"}, nil, nil)

	assert.False(t, forward.ShouldIgnore(entry))
	assert.False(t, reversed.ShouldIgnore(entry))
}

func TestShouldIgnoreCallerNegationOverridesFileRule(t *testing.T) {
	patternSet := patterns.NewPatternSet([]string{"!.idea"}, []string{".idea", "venv"}, nil)

	assert.False(t, patternSet.ShouldIgnore(patterns.Entry{Name: ".idea", ResolvedPath: "/var/.idea", IsDirectory: true}))
	assert.True(t, patternSet.ShouldIgnore(patterns.Entry{Name: "venv", ResolvedPath: "/var/venv", IsDirectory: true}))
}

func TestShouldIgnoreWithoutExcludeMatch(t *testing.T) {
	patternSet := patterns.NewPatternSet([]string{"!xx1.txt"}, nil, nil)

	assert.False(t, patternSet.ShouldIgnore(patterns.Entry{Name: dataFileName, ResolvedPath: dataFilePath}))
}

func TestShouldCollapseTreatsEntryAsDirectory(t *testing.T) {
	patternSet := patterns.NewPatternSet(nil, nil, []string{"data/"})

	assert.True(t, patternSet.ShouldCollapse(patterns.Entry{Name: dataDirectoryName, ResolvedPath: dataDirectoryPath}))
	assert.False(t, patternSet.ShouldCollapse(patterns.Entry{Name: "other", ResolvedPath: "/var/other"}))
}

func TestNilPatternSetDecidesNothing(t *testing.T) {
	var patternSet *patterns.PatternSet
	entry := patterns.Entry{Name: dataDirectoryName, ResolvedPath: dataDirectoryPath, IsDirectory: true}

	assert.False(t, patternSet.ShouldIgnore(entry))
	assert.False(t, patternSet.ShouldCollapse(entry))
}

func TestEmptyPatternsMatchNothing(t *testing.T) {
	entry := patterns.Entry{Name: dataFileName, ResolvedPath: dataFilePath}

	assert.False(t, patterns.Matches(entry.Name, entry.ResolvedPath, false, ""))
	assert.False(t, patterns.NewPatternSet([]string{""}, nil, nil).ShouldIgnore(entry))
	assert.False(t, patterns.NewPatternSet(nil, nil, []string{""}).ShouldCollapse(entry))

	bareNegation := patterns.NewPatternSet([]string{"*.txt", "!"}, nil, nil)
	assert.Equal(t, []string{""}, bareNegation.Negates())
	assert.True(t, bareNegation.ShouldIgnore(entry))
}
