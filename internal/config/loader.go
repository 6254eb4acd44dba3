package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/output"
)

// Environment variable prefix for sqfpack configuration.
const envPrefix = "SQFPACK"

// Loader reads project files.
type Loader struct {
	v         *viper.Viper
	validator *Validator
}

// NewLoader creates a new project loader. SQFPACK_TAG overrides the tag of
// the root context.
func NewLoader(validator *Validator) *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("tag", envPrefix+"_TAG")

	return &Loader{v: v, validator: validator}
}

// Load reads, validates and decodes the project file at path.
func (l *Loader) Load(path string) (*Project, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding project path: %w", err)
	}
	file, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return nil, oerrors.NewNotFoundError(
			"project file not found",
			file,
			fmt.Sprintf("Run sqfpack next to a %s or pass --config", DefaultFileName),
		)
	}

	l.v.SetConfigFile(file)
	if filepath.Ext(file) == "" {
		l.v.SetConfigType("yaml")
	}
	if err := l.v.ReadInConfig(); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), file, "", "The project file must be YAML, JSON or TOML")
	}

	settings := l.v.AllSettings()
	for k, v := range settings {
		if v == nil {
			delete(settings, k)
		}
	}
	// viper lowercases keys; sub names are case sensitive.
	raw, err := rawSubs(file)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), file, "subs", "")
	}
	if raw != nil {
		settings["subs"] = raw
	}
	if l.validator != nil {
		if err := l.validator.Validate(settings, file); err != nil {
			return nil, err
		}
	}

	root := l.v.GetString("path")
	if root == "" {
		root = "."
	}
	if root, err = ExpandPath(root); err != nil {
		return nil, fmt.Errorf("expanding source path: %w", err)
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(file), root)
	}

	subs, err := decodeSubs(settings["subs"], "subs")
	if err != nil {
		var detail *oerrors.DetailError
		if errors.As(err, &detail) {
			detail.Location = file
		}
		return nil, err
	}

	p := &Project{
		File:   file,
		Path:   filepath.Clean(root),
		Tag:    l.v.GetString("tag"),
		Output: l.v.GetString("output"),
		Subs:   subs,
	}
	output.Debug("loaded project", "file", file, "path", p.Path, "subs", len(p.Subs))
	return p, nil
}

// rawSubs decodes the subs mapping of a project file with key case intact.
func rawSubs(file string) (any, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	doc := map[string]any{}
	if filepath.Ext(file) == ".toml" {
		err = toml.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding subs: %w", err)
	}
	return doc["subs"], nil
}
