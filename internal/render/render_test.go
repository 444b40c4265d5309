package render_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/twig/internal/render"
	"github.com/temirov/twig/internal/tree"
)

func directory(name string, children ...*tree.Node) *tree.Node {
	return &tree.Node{Path: name, Name: name, IsDirectory: true, Children: children}
}

func file(name string) *tree.Node {
	return &tree.Node{Path: name, Name: name}
}

func sampleTree() *tree.Node {
	return directory("var",
		directory("data",
			directory("more", file("xx3.txt")),
			file("xx1.txt"),
			file("xx2.txt"),
		),
		directory("other", file("yy1.txt")),
	)
}

func mustStyle(t *testing.T, name string) render.Style {
	t.Helper()
	style, styleError := render.StyleByName(name)
	require.NoError(t, styleError)
	return style
}

func TestRenderNormalStyle(t *testing.T) {
	expected := "\n" + `var/
├── data/
│   ├── more/
│   │   └── xx3.txt
│   ├── xx1.txt
│   └── xx2.txt
└── other/
    └── yy1.txt`

	assert.Equal(t, expected, render.Render(sampleTree(), mustStyle(t, render.StyleNormal)))
}

func TestRenderDoubleStyle(t *testing.T) {
	rootNode := directory("var",
		directory("data", file("xx1.txt")),
		directory("other", file("yy1.txt")),
	)
	expected := "\n" + `var/
╠══ data/
║   ╚══ xx1.txt
╚══ other/
    ╚══ yy1.txt`

	assert.Equal(t, expected, render.Render(rootNode, mustStyle(t, render.StyleDouble)))
}

func TestRenderEmptyDirectoryAndPlaceholder(t *testing.T) {
	rootNode := directory("var",
		directory("data", &tree.Node{Path: tree.PlaceholderName, Name: tree.PlaceholderName, Placeholder: true}),
		directory("empty"),
	)
	expected := "\n" + `var/
├── data/
│   └── ...
└── empty/`

	assert.Equal(t, expected, render.Render(rootNode, mustStyle(t, render.StyleNormal)))
}

func TestRenderRootName(t *testing.T) {
	testCases := []struct {
		name     string
		rootName string
		expected string
	}{
		{name: "plain", rootName: "var", expected: "\nvar/"},
		{name: "leading_separators_stripped", rootName: "//var", expected: "\nvar/"},
		{name: "filesystem_root", rootName: "", expected: "\n/"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, render.Render(directory(testCase.rootName), mustStyle(t, render.StyleNormal)))
		})
	}
}

func TestRenderStyleSubstitutionKeepsStructure(t *testing.T) {
	normalStyle := mustStyle(t, render.StyleNormal)
	normalOutput := render.Render(sampleTree(), normalStyle)

	for _, styleName := range render.StyleNames() {
		t.Run(styleName, func(t *testing.T) {
			style := mustStyle(t, styleName)
			translated := strings.NewReplacer(
				style.Tee, normalStyle.Tee,
				style.Elbow, normalStyle.Elbow,
				style.Vertical, normalStyle.Vertical,
			).Replace(render.Render(sampleTree(), style))
			assert.Equal(t, normalOutput, translated)
		})
	}
}

func TestStyleByName(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedTee   string
		expectFailure bool
	}{
		{name: "normal", input: "normal", expectedTee: "├──"},
		{name: "light_alias", input: "light", expectedTee: "├──"},
		{name: "heavy", input: "heavy", expectedTee: "┣━━"},
		{name: "bold_alias_mixed_case", input: " Bold ", expectedTee: "┣━━"},
		{name: "double", input: "double", expectedTee: "╠══"},
		{name: "unknown", input: "dotted", expectFailure: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			style, styleError := render.StyleByName(testCase.input)
			if testCase.expectFailure {
				require.Error(t, styleError)
				assert.True(t, errors.Is(styleError, render.ErrUnknownStyle))
				return
			}
			require.NoError(t, styleError)
			assert.Equal(t, testCase.expectedTee, style.Tee)
		})
	}
}

func TestStyleNames(t *testing.T) {
	assert.Equal(t, []string{render.StyleDouble, render.StyleHeavy, render.StyleNormal}, render.StyleNames())
}
