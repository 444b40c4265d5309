package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/twig/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	HomeDirectory    string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults for every CLI flag. Nil pointers and
// empty values mean "not configured".
type ApplicationConfiguration struct {
	Ignore       []string `mapstructure:"ignore"`
	Collapse     []string `mapstructure:"collapse"`
	Ellipses     *bool    `mapstructure:"ellipses"`
	Sort         *bool    `mapstructure:"sort"`
	Style        string   `mapstructure:"style"`
	IgnoreFile   string   `mapstructure:"ignore_file"`
	NoIgnoreFile *bool    `mapstructure:"no_ignore_file"`
	Copy         *bool    `mapstructure:"copy"`
	Tokens       *bool    `mapstructure:"tokens"`
	Model        string   `mapstructure:"model"`
}

// LoadApplicationConfiguration loads the global file and then the local or
// explicit file, the later one overriding the earlier. Missing global and
// local files are skipped; a missing explicit file is an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}

	var merged ApplicationConfiguration

	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, explicit := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, explicit)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if len(merged.Ignore) > 0 {
		merged.Ignore = utils.DeduplicatePatterns(merged.Ignore)
	}
	if len(merged.Collapse) > 0 {
		merged.Collapse = utils.DeduplicatePatterns(merged.Collapse)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, bool) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, true
		}
		return filepath.Join(workingDirectory, explicitPath), true
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), false
}

func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, &ConfigurationError{Path: path, Err: statErr}
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, &ConfigurationError{Path: path, Err: fmt.Errorf("path is a directory")}
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, &ConfigurationError{Path: path, Err: readErr}
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, &ConfigurationError{Path: path, Err: decodeErr}
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
// Lists are replaced whole when the override provides any entries.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, override.Ignore...)
	}
	if len(override.Collapse) > 0 {
		result.Collapse = append([]string{}, override.Collapse...)
	}
	if override.Ellipses != nil {
		result.Ellipses = cloneBool(override.Ellipses)
	}
	if override.Sort != nil {
		result.Sort = cloneBool(override.Sort)
	}
	if override.Style != "" {
		result.Style = override.Style
	}
	if override.IgnoreFile != "" {
		result.IgnoreFile = override.IgnoreFile
	}
	if override.NoIgnoreFile != nil {
		result.NoIgnoreFile = cloneBool(override.NoIgnoreFile)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Tokens != nil {
		result.Tokens = cloneBool(override.Tokens)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// BoolOr returns the configured value or fallback when unset.
func BoolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
