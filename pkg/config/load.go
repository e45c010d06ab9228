package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// EnvVar overrides the configuration location.
	EnvVar = "LAYBELL_CONFIG"
	// LegacyEnvVar is honoured when EnvVar is unset.
	LegacyEnvVar = "VIAL_LAYBELL_CONFIG"
	// FileName is the configuration file looked up when no path is given.
	FileName = "config.toml"

	defaultSection  = "default"
	profilesSection = "profiles"
)

var (
	ErrMissingKey      = errors.New("missing required key")
	ErrNotNumber       = errors.New("value is not a number")
	ErrMissingSection  = errors.New("missing [default] section")
	ErrUnknownProfile  = errors.New("unknown profile")
	ErrUnsupportedType = errors.New("unsupported file extension")
)

// Error reports a configuration failure. Key is empty for failures that
// concern the whole document.
type Error struct {
	Path string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: key %q: %v", e.Path, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// locator holds the environment lookups used by Resolve, replaced in tests.
type locator struct {
	getenv     func(string) string
	sourceDir  func() (string, bool)
	executable func() (string, error)
	exists     func(string) bool
}

func defaultLocator() locator {
	return locator{
		getenv: os.Getenv,
		sourceDir: func() (string, bool) {
			_, file, _, ok := runtime.Caller(0)
			if !ok {
				return "", false
			}
			return filepath.Dir(file), true
		},
		executable: os.Executable,
		exists: func(p string) bool {
			info, err := os.Stat(p)
			return err == nil && !info.IsDir()
		},
	}
}

// Resolve picks the configuration file. An explicit path wins, then
// LAYBELL_CONFIG, then VIAL_LAYBELL_CONFIG, then config.toml at the repository root of the build
// tree, then ../../config.toml beside the executable, then config.toml in
// the working directory. Resolve does not check that the explicit or
// environment path exists; Load reports that.
func Resolve(explicit string) string {
	return defaultLocator().resolve(explicit)
}

func (l locator) resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, env := range []string{EnvVar, LegacyEnvVar} {
		if p := l.getenv(env); p != "" {
			return p
		}
	}
	if dir, ok := l.sourceDir(); ok {
		if p := filepath.Join(dir, "..", "..", FileName); l.exists(p) {
			return p
		}
	}
	if exe, err := l.executable(); err == nil {
		if p := filepath.Join(filepath.Dir(exe), "..", "..", FileName); l.exists(p) {
			return p
		}
	}
	return FileName
}

// Load reads the document at path and returns the [default] section with
// the named profile, if any, laid over it. Every key must be present and
// numeric. Range checks are left to Validate and the part generators.
func Load(path, profile string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return Parse(path, data, profile)
}

// Parse decodes an in-memory document. The format is chosen from the
// extension of name: .yaml and .yml are YAML, anything else is TOML.
func Parse(name string, data []byte, profile string) (*Config, error) {
	doc, err := decode(name, data)
	if err != nil {
		return nil, &Error{Path: name, Err: err}
	}

	values, ok := table(doc[defaultSection])
	if !ok {
		return nil, &Error{Path: name, Err: ErrMissingSection}
	}
	if profile != "" {
		overlay, err := profileTable(doc, profile)
		if err != nil {
			return nil, &Error{Path: name, Err: err}
		}
		merged := make(map[string]any, len(values)+len(overlay))
		for k, v := range values {
			merged[k] = v
		}
		for k, v := range overlay {
			merged[k] = v
		}
		values = merged
	}

	cfg := &Config{}
	for _, f := range cfg.fields() {
		raw, present := values[f.key]
		if !present {
			return nil, &Error{Path: name, Key: f.key, Err: ErrMissingKey}
		}
		v, ok := number(raw)
		if !ok {
			return nil, &Error{Path: name, Key: f.key, Err: fmt.Errorf("%w: %v", ErrNotNumber, raw)}
		}
		*f.ptr = v
	}
	return cfg, nil
}

// Profiles lists the profile names defined in the document at path.
func Profiles(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	doc, err := decode(path, data)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return profileNames(doc), nil
}

func decode(name string, data []byte) (map[string]any, error) {
	doc := map[string]any{}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml", "":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(name))
	}
	return doc, nil
}

func profileTable(doc map[string]any, profile string) (map[string]any, error) {
	profiles, _ := table(doc[profilesSection])
	overlay, ok := table(profiles[profile])
	if !ok {
		names := profileNames(doc)
		if len(names) == 0 {
			return nil, fmt.Errorf("%w %q: document defines no profiles", ErrUnknownProfile, profile)
		}
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownProfile, profile, strings.Join(names, ", "))
	}
	return overlay, nil
}

func profileNames(doc map[string]any) []string {
	profiles, _ := table(doc[profilesSection])
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func table(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// number accepts the numeric shapes produced by the TOML and YAML decoders.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
