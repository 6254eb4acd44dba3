package config

import (
	"os"

	"github.com/sigmundklaa/sqfpack/internal/output"
)

// Environment variables read by sqfpack.
const (
	EnvConfig = "SQFPACK_CONFIG"
	EnvOutput = "SQFPACK_OUTPUT"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from the project file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value and where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource

	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the project file path using precedence:
// (1) --config flag, (2) SQFPACK_CONFIG env, (3) ./sqfpack.yaml
func ResolveConfigPath(flagValue string) ResolvedValue {
	return resolve("config", flagValue, os.Getenv(EnvConfig), "", DefaultFileName)
}

// ResolveOutput resolves the export directory using precedence:
// (1) --output flag, (2) SQFPACK_OUTPUT env, (3) project output, (4) "out"
func ResolveOutput(flagValue, configValue string) ResolvedValue {
	return resolve("output", flagValue, os.Getenv(EnvOutput), configValue, DefaultOutput)
}

func resolve(key, flagValue, envValue, configValue, defaultValue string) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, envValue},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
