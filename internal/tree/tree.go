// Package tree builds an in-memory node hierarchy for a directory, pruning and
// collapsing entries according to a pattern set.
package tree

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/twig/internal/patterns"
)

const (
	// PlaceholderName is the display name of the synthetic child of a collapsed directory.
	PlaceholderName = "..."

	errorResolvePathFormat   = "resolving path %s: %w"
	errorTraversalFormat     = "listing directory %s: %v"
	errorBuildTreeFormat     = "building tree for %s: %w"
	rootSeparatorsCutset     = `/\`
	debugSkippedEntryMessage = "skipping ignored entry"
	debugCollapsedMessage    = "collapsing directory"
	debugListFailedMessage   = "unable to list directory"
)

// Node is one filesystem entry in the output tree. A node that is not a
// directory never has children.
type Node struct {
	Path        string
	Name        string
	IsDirectory bool
	Placeholder bool
	Children    []*Node
}

// TraversalError reports a directory that could not be listed.
type TraversalError struct {
	Path string
	Err  error
}

func (traversalError *TraversalError) Error() string {
	return fmt.Sprintf(errorTraversalFormat, traversalError.Path, traversalError.Err)
}

func (traversalError *TraversalError) Unwrap() error {
	return traversalError.Err
}

// Builder constructs node hierarchies. A Builder holds no per-build state and
// may be shared by concurrent builds.
type Builder struct {
	Lister   Lister
	Patterns *patterns.PatternSet
	Sort     bool
	Ellipses bool
	Logger   *zap.Logger
}

// Build lists directoryPath recursively and returns its root node. The root
// itself is never tested against the pattern set. Any directory that cannot be
// listed fails the whole build with a *TraversalError for that directory.
func (builder *Builder) Build(directoryPath string) (*Node, error) {
	rootNode := &Node{
		Path:        directoryPath,
		Name:        builder.rootName(directoryPath),
		IsDirectory: true,
	}
	if buildError := builder.populate(rootNode, false); buildError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, directoryPath, buildError)
	}
	return rootNode, nil
}

func (builder *Builder) populate(directoryNode *Node, collapsed bool) error {
	if collapsed {
		if builder.Ellipses {
			directoryNode.Children = append(directoryNode.Children, &Node{
				Path:        PlaceholderName,
				Name:        PlaceholderName,
				Placeholder: true,
			})
		}
		return nil
	}

	entries, listError := builder.Lister.List(directoryNode.Path)
	if listError != nil {
		builder.logger().Debug(debugListFailedMessage, zap.String("path", directoryNode.Path), zap.Error(listError))
		return &TraversalError{Path: directoryNode.Path, Err: listError}
	}
	if builder.Sort {
		sort.SliceStable(entries, func(left, right int) bool {
			return entries[left].Name < entries[right].Name
		})
	}

	for _, entry := range entries {
		childPath := filepath.Join(directoryNode.Path, entry.Name)
		resolvedPath, resolveError := builder.Lister.Resolve(childPath)
		if resolveError != nil {
			return &TraversalError{Path: childPath, Err: resolveError}
		}
		candidate := patterns.Entry{
			Name:         entry.Name,
			ResolvedPath: resolvedPath,
			IsDirectory:  entry.IsDirectory,
		}
		if builder.Patterns.ShouldIgnore(candidate) {
			builder.logger().Debug(debugSkippedEntryMessage, zap.String("path", resolvedPath))
			continue
		}

		childNode := &Node{
			Path:        childPath,
			Name:        entry.Name,
			IsDirectory: entry.IsDirectory,
		}
		directoryNode.Children = append(directoryNode.Children, childNode)
		if !entry.IsDirectory {
			continue
		}

		collapseChild := builder.Patterns.ShouldCollapse(candidate)
		if collapseChild {
			builder.logger().Debug(debugCollapsedMessage, zap.String("path", resolvedPath))
		}
		if populateError := builder.populate(childNode, collapseChild); populateError != nil {
			return populateError
		}
	}
	return nil
}

// rootName returns the display name for the root directory. Paths such as "."
// or "/" have no usable base name, so the resolved path supplies one.
func (builder *Builder) rootName(directoryPath string) string {
	baseName := filepath.Base(directoryPath)
	if baseName != "." && strings.Trim(baseName, rootSeparatorsCutset) != "" {
		return baseName
	}
	resolvedPath, resolveError := builder.Lister.Resolve(directoryPath)
	if resolveError != nil {
		return baseName
	}
	resolvedBase := filepath.Base(filepath.FromSlash(resolvedPath))
	if strings.Trim(resolvedBase, rootSeparatorsCutset) == "" {
		return ""
	}
	return resolvedBase
}

func (builder *Builder) logger() *zap.Logger {
	if builder.Logger == nil {
		return zap.NewNop()
	}
	return builder.Logger
}
