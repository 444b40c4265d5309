package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Style name constants.
const (
	StyleNormal = "normal"
	StyleHeavy  = "heavy"
	StyleDouble = "double"

	styleLightAlias = "light"
	styleBoldAlias  = "bold"

	errorUnknownStyleFormat = "%w %q (expected one of %s)"
)

// ErrUnknownStyle is returned for a style name outside the preset table.
var ErrUnknownStyle = errors.New("unknown style")

// Style is an immutable set of branch-drawing glyphs.
type Style struct {
	Vertical string
	Tee      string
	Elbow    string
	Space    string
}

var stylePresets = map[string]Style{
	StyleNormal: {Vertical: "│", Tee: "├──", Elbow: "└──", Space: " "},
	StyleHeavy:  {Vertical: "┃", Tee: "┣━━", Elbow: "┗━━", Space: " "},
	StyleDouble: {Vertical: "║", Tee: "╠══", Elbow: "╚══", Space: " "},
}

var styleAliases = map[string]string{
	styleLightAlias: StyleNormal,
	styleBoldAlias:  StyleHeavy,
}

// StyleNames lists the canonical preset names in sorted order.
func StyleNames() []string {
	names := make([]string, 0, len(stylePresets))
	for name := range stylePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StyleByName resolves a preset by name. Matching ignores case and surrounding whitespace.
func StyleByName(name string) (Style, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(name))
	if canonicalName, isAlias := styleAliases[normalizedName]; isAlias {
		normalizedName = canonicalName
	}
	style, known := stylePresets[normalizedName]
	if !known {
		return Style{}, fmt.Errorf(errorUnknownStyleFormat, ErrUnknownStyle, name, strings.Join(StyleNames(), ", "))
	}
	return style, nil
}
