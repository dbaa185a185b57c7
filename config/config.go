package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/pkg/paths"
	"github.com/grovetools/navshell/util/pathutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched in order in every directory from the start dir up.
var configNames = []string{
	"navshell.yml",
	"navshell.yaml",
	".navshell.yml",
	".navshell.yaml",
	"navshell.toml",
}

// overrideNames are merged last, from the project config's directory.
var overrideNames = []string{
	"navshell.override.yml",
	"navshell.override.yaml",
	"navshell.override.toml",
}

// Format is the on-disk syntax of a config file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath infers the format from the file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, validates and defaults a single config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytesWithFormat(data, FormatForPath(path))
	if err != nil {
		if shellErr, ok := errors.As(err); ok {
			shellErr.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.sources = []string{path}
	return cfg, nil
}

// LoadDefault loads the layered configuration starting at the working directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory.
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger merges, in increasing precedence:
// 1. Global config (~/.config/navshell/navshell.yml) - optional
// 2. Project config (navshell.yml found upward from startDir) - optional
// 3. Local override (navshell.override.yml next to the project config) - optional
//
// Missing files are not an error; a directory with no config at all yields the defaults.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	final := &Config{}
	var sources []string

	merge := func(path string) error {
		logger.WithField("path", path).Debug("Loading configuration layer")
		layer, err := readLayer(path)
		if err != nil {
			return err
		}
		final = mergeConfigs(final, layer)
		sources = append(sources, path)
		return nil
	}

	// 1. Global
	for _, globalPath := range globalCandidates() {
		if fileExists(globalPath) {
			if err := merge(globalPath); err != nil {
				return nil, err
			}
			break
		}
	}

	// 2. Project
	projectPath, err := FindConfigFile(startDir)
	if err != nil && !errors.Is(err, errors.ErrCodeConfigNotFound) {
		return nil, err
	}
	if projectPath != "" && !contains(sources, projectPath) {
		if err := merge(projectPath); err != nil {
			return nil, err
		}
	}

	// 3. Overrides
	overrideDir := startDir
	if projectPath != "" {
		overrideDir = filepath.Dir(projectPath)
	}
	for _, name := range overrideNames {
		overridePath := filepath.Join(overrideDir, name)
		if !fileExists(overridePath) {
			continue
		}
		if err := merge(overridePath); err != nil {
			logger.WithError(err).Warn("Failed to load override file, skipping")
		}
	}

	final.SetDefaults()
	if err := final.Validate(); err != nil {
		return nil, err
	}
	final.sources = sources

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(final); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}

	return final, nil
}

// LoadFromBytes parses YAML configuration from a byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	return LoadFromBytesWithFormat(data, FormatYAML)
}

// LoadFromBytesWithFormat parses, schema-checks, defaults and validates configuration.
func LoadFromBytesWithFormat(data []byte, format Format) (*Config, error) {
	cfg, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readLayer decodes and schema-checks one file without applying defaults.
func readLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config").
			WithDetail("path", path)
	}
	layer, err := decode(data, FormatForPath(path))
	if err != nil {
		if shellErr, ok := errors.As(err); ok {
			shellErr.WithDetail("path", path)
		}
		return nil, err
	}
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.Validate(layer); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed").
			WithDetail("path", path)
	}
	return layer, nil
}

// decode expands environment variables and unmarshals YAML or TOML.
// TOML documents are normalized through a generic map so that unknown
// top-level tables land in Extensions exactly as they do for YAML.
func decode(data []byte, format Format) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	if format == FormatTOML {
		var raw map[string]interface{}
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		normalized, err := yaml.Marshal(raw)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to normalize TOML configuration")
		}
		expanded = normalized
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	return &cfg, nil
}

// FindConfigFile searches from startDir up to the filesystem root for a
// navshell config file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

func globalCandidates() []string {
	dir := paths.ConfigDir()
	if dir == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, "navshell.yml"),
		filepath.Join(dir, "navshell.yaml"),
		filepath.Join(dir, "navshell.toml"),
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// containsDir reports whether dir is already in list, following symlinks.
func containsDir(list []string, dir string) bool {
	for _, v := range list {
		if same, err := pathutil.ComparePaths(v, dir); err == nil && same {
			return true
		}
	}
	return false
}

// IsConfigFile reports whether name (a path or base name) is one of the file
// names navshell reads configuration from.
func IsConfigFile(name string) bool {
	base := filepath.Base(name)
	return contains(configNames, base) || contains(overrideNames, base)
}

// WatchDirs returns the directories whose config files affect a load started
// from startDir: the global config dir and the project config's directory.
func WatchDirs(startDir string) []string {
	var dirs []string
	if dir := paths.ConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	project := startDir
	if path, err := FindConfigFile(startDir); err == nil {
		project = filepath.Dir(path)
	}
	if project != "" && !containsDir(dirs, project) {
		dirs = append(dirs, project)
	}
	return dirs
}
