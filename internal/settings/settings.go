// Package settings provides the persisted configuration for cargogen.
// The settings file lives beside the executable so the tool stays
// portable; a missing or unreadable file never blocks a run.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dquiroga/cargogen/internal/filelock"
)

// EnvConfigPath overrides the settings file location when set
const EnvConfigPath = "CARGOGEN_CONFIG"

// configFileName is the settings file kept beside the executable
const configFileName = "config.json"

// DefaultPreviewRows is the row cap applied by the preview command
const DefaultPreviewRows = 100

// Settings holds the persisted tool configuration
type Settings struct {
	// DestinationPath is the directory generated runs are written under
	DestinationPath string `json:"destination_path"`

	// TemplatesDir is scanned by the templates command for .docx files
	TemplatesDir string `json:"templates_dir"`

	// CargoTemplatePath is the default cargo document template
	CargoTemplatePath string `json:"cargo_template_path"`

	// AutorizacionTemplatePath is the default discount authorization template
	AutorizacionTemplatePath string `json:"autorizacion_template_path"`

	// CargoEnabled includes the cargo template in default generation
	CargoEnabled bool `json:"cargo_enabled"`

	// AutorizacionEnabled includes the authorization template in default generation
	AutorizacionEnabled bool `json:"autorizacion_enabled"`

	// PreviewRowsLimit caps the rows shown by the preview command
	PreviewRowsLimit int `json:"preview_rows_limit"`

	// LogFile receives the session log when file logging is on
	LogFile string `json:"log_file"`
}

// Default returns the settings used when no file exists
func Default() *Settings {
	return &Settings{
		DestinationPath:          "output",
		TemplatesDir:             "templates",
		CargoTemplatePath:        filepath.Join("templates", "CARGO UNIFORMES.docx"),
		AutorizacionTemplatePath: filepath.Join("templates", "50% - AUTORIZACIÓN DESCUENTO DE UNIFORMES (02).docx"),
		CargoEnabled:             true,
		AutorizacionEnabled:      true,
		PreviewRowsLimit:         DefaultPreviewRows,
		LogFile:                  "app.log",
	}
}

// DefaultPath returns the settings file location: the CARGOGEN_CONFIG
// environment variable when set, otherwise config.json beside the
// executable. Falls back to the working directory if the executable
// path cannot be resolved.
func DefaultPath() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}

	exe, err := os.Executable()
	if err != nil {
		return configFileName
	}
	return filepath.Join(filepath.Dir(exe), configFileName)
}

// Load reads settings from path. A missing file yields defaults with no
// error. A file that cannot be read or parsed also yields defaults, but
// with a non-nil error the caller should log as a warning; the returned
// settings are always usable.
func Load(path string) (*Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return Default(), fmt.Errorf("read settings file %s: %w", path, err)
	}

	// Keys absent from the file keep their default values
	if err := json.Unmarshal(data, s); err != nil {
		return Default(), fmt.Errorf("parse settings file %s: %w", path, err)
	}

	if s.PreviewRowsLimit < 1 {
		s.PreviewRowsLimit = DefaultPreviewRows
	}

	return s, nil
}

// Save writes the settings to path atomically, holding the settings
// lock so concurrent invocations cannot interleave writes.
func (s *Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Set updates one setting addressed by its JSON key, parsing the value
// according to the field's type. Used by the config set command.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "destination_path":
		s.DestinationPath = value
	case "templates_dir":
		s.TemplatesDir = value
	case "cargo_template_path":
		s.CargoTemplatePath = value
	case "autorizacion_template_path":
		s.AutorizacionTemplatePath = value
	case "cargo_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("setting %s needs a boolean, got %q", key, value)
		}
		s.CargoEnabled = b
	case "autorizacion_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("setting %s needs a boolean, got %q", key, value)
		}
		s.AutorizacionEnabled = b
	case "preview_rows_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("setting %s needs a positive integer, got %q", key, value)
		}
		s.PreviewRowsLimit = n
	case "log_file":
		s.LogFile = value
	default:
		return fmt.Errorf("unknown setting %q, valid keys: %s", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns one setting's current value as a string, or an error for
// an unknown key.
func (s *Settings) Get(key string) (string, error) {
	values := s.valueMap()
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q, valid keys: %s", key, strings.Join(Keys(), ", "))
	}
	return v, nil
}

// Keys lists the valid setting keys in sorted order
func Keys() []string {
	keys := []string{
		"destination_path",
		"templates_dir",
		"cargo_template_path",
		"autorizacion_template_path",
		"cargo_enabled",
		"autorizacion_enabled",
		"preview_rows_limit",
		"log_file",
	}
	sort.Strings(keys)
	return keys
}

func (s *Settings) valueMap() map[string]string {
	return map[string]string{
		"destination_path":           s.DestinationPath,
		"templates_dir":              s.TemplatesDir,
		"cargo_template_path":        s.CargoTemplatePath,
		"autorizacion_template_path": s.AutorizacionTemplatePath,
		"cargo_enabled":              strconv.FormatBool(s.CargoEnabled),
		"autorizacion_enabled":       strconv.FormatBool(s.AutorizacionEnabled),
		"preview_rows_limit":         strconv.Itoa(s.PreviewRowsLimit),
		"log_file":                   s.LogFile,
	}
}
