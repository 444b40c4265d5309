// Package config loads ignore-rule files and application configuration.
package config

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	commentPrefix        = "#"
	carriageReturnSuffix = "\r"
	// DefaultIgnoreSourceName labels the built-in rule set in logs and errors.
	DefaultIgnoreSourceName = "default.twigignore"

	errorEmptyIgnorePath     = "ignore file path is empty"
	errorUnknownIgnoreMode   = "unknown ignore mode %d"
	warningCloseIgnoreFormat = "Warning: failed to close %s: %v\n"
)

//go:embed default.twigignore
var defaultIgnoreRules string

// IgnoreMode selects where extra ignore rules come from.
type IgnoreMode int

const (
	// IgnoreModeDefault uses the built-in rule set.
	IgnoreModeDefault IgnoreMode = iota
	// IgnoreModeFile reads rules from a caller-specified path.
	IgnoreModeFile
	// IgnoreModeDisabled contributes no extra rules.
	IgnoreModeDisabled
)

// IgnoreSource identifies the ignore-rule resource for one invocation.
type IgnoreSource struct {
	Mode IgnoreMode
	Path string
}

// NewIgnoreSource derives the source from CLI-level choices. Disabling wins over
// an explicit path; an empty path means the built-in rules.
func NewIgnoreSource(explicitPath string, disabled bool) IgnoreSource {
	if disabled {
		return IgnoreSource{Mode: IgnoreModeDisabled}
	}
	if strings.TrimSpace(explicitPath) != "" {
		return IgnoreSource{Mode: IgnoreModeFile, Path: explicitPath}
	}
	return IgnoreSource{Mode: IgnoreModeDefault}
}

// String describes the source for log output.
func (source IgnoreSource) String() string {
	switch source.Mode {
	case IgnoreModeFile:
		return source.Path
	case IgnoreModeDisabled:
		return "disabled"
	default:
		return DefaultIgnoreSourceName
	}
}

// LoadIgnoreRules returns the raw rule lines for source. Negated lines keep
// their "!" prefix. A file requested explicitly must be readable.
func LoadIgnoreRules(source IgnoreSource) ([]string, error) {
	switch source.Mode {
	case IgnoreModeDisabled:
		return nil, nil
	case IgnoreModeDefault:
		return ParseIgnoreRules(strings.NewReader(defaultIgnoreRules))
	case IgnoreModeFile:
		return LoadIgnoreFile(source.Path)
	default:
		return nil, &ConfigurationError{Path: source.Path, Err: fmt.Errorf(errorUnknownIgnoreMode, source.Mode)}
	}
}

// LoadIgnoreFile reads ignore rules from ignoreFilePath.
//
// #nosec G304
func LoadIgnoreFile(ignoreFilePath string) ([]string, error) {
	if strings.TrimSpace(ignoreFilePath) == "" {
		return nil, &ConfigurationError{Path: ignoreFilePath, Err: errors.New(errorEmptyIgnorePath)}
	}
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		return nil, &ConfigurationError{Path: ignoreFilePath, Err: openFileError}
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseIgnoreFormat, ignoreFilePath, closeError)
		}
	}()

	rules, parseError := ParseIgnoreRules(fileHandle)
	if parseError != nil {
		return nil, &ConfigurationError{Path: ignoreFilePath, Err: parseError}
	}
	return rules, nil
}

// ParseIgnoreRules reads one pattern per line. Blank lines and lines starting
// with "#" are skipped; other lines are kept verbatim.
func ParseIgnoreRules(reader io.Reader) ([]string, error) {
	var rules []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), carriageReturnSuffix)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		rules = append(rules, line)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return rules, nil
}
