// Package config loads converter defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nb2md/internal/fileutil"
	"github.com/alnah/go-nb2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits to keep generated front matter and paths sane.
const (
	MaxCategoriesLength = 100 // front matter categories line
	MaxTagLength        = 50  // one tag
	MaxTags             = 20  // tag list size
	MaxLanguageLength   = 30  // fence info string
	MaxDirLength        = 512 // output directory path
	MaxDateFormatLength = 50  // date prefix format
)

// Config holds defaults for notebook conversion. Flags override config
// values; config values override the built-in defaults.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Post   PostConfig   `yaml:"post"`
	Source SourceConfig `yaml:"source"`
	Images ImagesConfig `yaml:"images"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = working directory)
	DateFormat string `yaml:"dateFormat"` // Date prefix for default filenames (default: YYYY-MM-DD)
}

// PostConfig defines Jekyll front matter defaults.
type PostConfig struct {
	Categories string   `yaml:"categories"` // Default: "coding"
	Tags       []string `yaml:"tags"`       // Default: [python, jupyter]
}

// SourceConfig defines source rendering options.
type SourceConfig struct {
	Language string `yaml:"language"` // Fence language for code cells (default: "python")
}

// ImagesConfig defines image embedding options.
type ImagesConfig struct {
	Extract bool `yaml:"extract"` // true = externalize images to side files
}

// Validate checks field lengths and list sizes.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dateFormat", c.Output.DateFormat, MaxDateFormatLength); err != nil {
		return err
	}
	if err := validateFieldLength("post.categories", c.Post.Categories, MaxCategoriesLength); err != nil {
		return err
	}
	if len(c.Post.Tags) > MaxTags {
		return fmt.Errorf("post.tags: %d tags, max %d", len(c.Post.Tags), MaxTags)
	}
	for i, tag := range c.Post.Tags {
		if err := validateFieldLength(fmt.Sprintf("post.tags[%d]", i), tag, MaxTagLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("source.language", c.Source.Language, MaxLanguageLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Source.Language, " \t`") {
		return fmt.Errorf("source.language: %q is not a bare fence info string", c.Source.Language)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in conversion defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{DateFormat: "YYYY-MM-DD"},
		Post: PostConfig{
			Categories: "coding",
			Tags:       []string{"python", "jupyter"},
		},
		Source: SourceConfig{Language: "python"},
		Images: ImagesConfig{Extract: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
// Unset fields fall back to the built-in defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/nb2md/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "nb2md", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
