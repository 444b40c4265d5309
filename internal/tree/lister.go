package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// errNotDirectory reports that a path classified as a directory cannot be listed as one.
var errNotDirectory = errors.New("not a directory")

// DirectoryEntry is one immediate entry of a listed directory.
type DirectoryEntry struct {
	Name        string
	IsDirectory bool
}

// Lister enumerates directories and resolves entry paths for pattern matching.
type Lister interface {
	List(directoryPath string) ([]DirectoryEntry, error)
	Resolve(entryPath string) (string, error)
}

// AferoLister lists directories through an afero filesystem in the order the
// backend enumerates them.
type AferoLister struct {
	Fs afero.Fs
}

// NewOsLister returns a lister backed by the operating system filesystem.
func NewOsLister() *AferoLister {
	return &AferoLister{Fs: afero.NewOsFs()}
}

// List returns the immediate entries of directoryPath. Symbolic links to
// directories are classified as directories; dangling links are files.
func (lister *AferoLister) List(directoryPath string) ([]DirectoryEntry, error) {
	directoryInfo, statError := lister.Fs.Stat(directoryPath)
	if statError != nil {
		return nil, statError
	}
	if !directoryInfo.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: directoryPath, Err: errNotDirectory}
	}

	directoryHandle, openError := lister.Fs.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	defer directoryHandle.Close()

	entryNames, readError := directoryHandle.Readdirnames(-1)
	if readError != nil {
		return nil, readError
	}

	entries := make([]DirectoryEntry, 0, len(entryNames))
	for _, entryName := range entryNames {
		entryInfo, entryStatError := lister.Fs.Stat(filepath.Join(directoryPath, entryName))
		entries = append(entries, DirectoryEntry{
			Name:        entryName,
			IsDirectory: entryStatError == nil && entryInfo.IsDir(),
		})
	}
	return entries, nil
}

// Resolve returns the absolute, forward-slash form of entryPath. On the
// operating system filesystem symbolic links are evaluated as well.
func (lister *AferoLister) Resolve(entryPath string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(entryPath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorResolvePathFormat, entryPath, absoluteError)
	}
	if _, isOsFs := lister.Fs.(*afero.OsFs); isOsFs {
		if evaluatedPath, evaluateError := filepath.EvalSymlinks(absolutePath); evaluateError == nil {
			absolutePath = evaluatedPath
		}
	}
	return filepath.ToSlash(absolutePath), nil
}

var _ Lister = (*AferoLister)(nil)
