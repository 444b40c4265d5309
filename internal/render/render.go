// Package render draws a built node hierarchy as indented branch lines.
package render

import (
	"strings"

	"github.com/temirov/twig/internal/tree"
)

const (
	directorySuffix   = "/"
	lineSeparator     = "\n"
	nameSeparator     = " "
	rootSeparatorsSet = `/\`
	prefixSpacerWidth = 3
	lastSpacerWidth   = 4
)

// Render returns the text form of the tree rooted at rootNode. The output
// begins with a blank line followed by the root name and carries no trailing
// newline. Rendering never touches the filesystem.
func Render(rootNode *tree.Node, style Style) string {
	if rootNode == nil {
		return lineSeparator
	}
	lines := []string{lineSeparator + strings.TrimLeft(rootNode.Name, rootSeparatorsSet) + directorySuffix}
	lines = appendChildren(lines, rootNode, style, "")
	return strings.Join(lines, lineSeparator)
}

func appendChildren(lines []string, parentNode *tree.Node, style Style, prefix string) []string {
	lastIndex := len(parentNode.Children) - 1
	for childIndex, child := range parentNode.Children {
		connector := style.Tee
		childPrefix := prefix + style.Vertical + strings.Repeat(style.Space, prefixSpacerWidth)
		if childIndex == lastIndex {
			connector = style.Elbow
			childPrefix = prefix + strings.Repeat(style.Space, lastSpacerWidth)
		}

		label := child.Name
		if child.IsDirectory {
			label += directorySuffix
		}
		lines = append(lines, prefix+connector+nameSeparator+label)
		if child.IsDirectory {
			lines = appendChildren(lines, child, style, childPrefix)
		}
	}
	return lines
}
