package config

import "fmt"

const errorConfigurationFormat = "configuration %s: %v"

// ConfigurationError reports an explicitly requested configuration or ignore
// file that could not be read or decoded.
type ConfigurationError struct {
	Path string
	Err  error
}

func (configurationError *ConfigurationError) Error() string {
	return fmt.Sprintf(errorConfigurationFormat, configurationError.Path, configurationError.Err)
}

func (configurationError *ConfigurationError) Unwrap() error {
	return configurationError.Err
}
