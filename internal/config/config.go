package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Defaults for unset configuration values
const (
	DefaultAutosavePath = "autosave"
	DefaultAutosaveKeep = 20
	DefaultKeymap       = "keymap.jsonl"
)

// Config represents the user configuration. Unset fields fall back to the
// defaults returned by the getters.
type Config struct {
	AutosaveIntervalS *int              `json:"autosave_interval_s,omitempty"`
	AutosavePath      *string           `json:"autosave_path,omitempty"`
	AutosaveKeep      *int              `json:"autosave_keep,omitempty"`
	AutosaveGit       *bool             `json:"autosave_git,omitempty"`
	AddBaseFrame      *bool             `json:"add_baseframe,omitempty"`
	DefaultColor      *string           `json:"default_color,omitempty"`
	GuideXY           *string           `json:"guide_xy,omitempty"`
	Keymap            *string           `json:"keymap,omitempty"`
	Bindings          map[string]string `json:"bindings,omitempty"`
	LogFile           *string           `json:"log_file,omitempty"`
	WordsFile         *string           `json:"words_file,omitempty"`

	path string
}

// DefaultPath returns the config file location: $DDW_CONFIG if set,
// otherwise ddw/config.json under the user config directory
func DefaultPath() string {
	if p := os.Getenv("DDW_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".ddw.json"
	}
	return filepath.Join(dir, "ddw", "config.json")
}

// Load reads the configuration at path; "" means DefaultPath. A missing
// file yields an empty configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{path: path}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Config{path: path}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from
func (c *Config) Save() error {
	if c.path == "" {
		c.path = DefaultPath()
	}
	configJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(c.path, configJSON, 0600)
}

// AutosaveInterval returns the time between autosaves; zero disables autosave
func (c *Config) AutosaveInterval() time.Duration {
	if c.AutosaveIntervalS == nil || *c.AutosaveIntervalS <= 0 {
		return 0
	}
	return time.Duration(*c.AutosaveIntervalS) * time.Second
}

// AutosaveDir returns the directory autosaves are written to
func (c *Config) AutosaveDir() string {
	if c.AutosavePath != nil && *c.AutosavePath != "" {
		return *c.AutosavePath
	}
	return DefaultAutosavePath
}

// AutosaveMaxKeep returns how many autosaves are kept per drawing
func (c *Config) AutosaveMaxKeep() int {
	if c.AutosaveKeep != nil && *c.AutosaveKeep > 0 {
		return *c.AutosaveKeep
	}
	return DefaultAutosaveKeep
}

// AutosaveToGit returns whether autosaves are committed to a git history
func (c *Config) AutosaveToGit() bool {
	return c.AutosaveGit != nil && *c.AutosaveGit
}

// BaseFrame returns whether new text is added without a frame
func (c *Config) BaseFrame() bool {
	return c.AddBaseFrame != nil && *c.AddBaseFrame
}

// Color returns the default color for new text
func (c *Config) Color() string {
	if c.DefaultColor != nil {
		return *c.DefaultColor
	}
	return ""
}

// Guides returns the guide position. ok is false when no guides are set.
func (c *Config) Guides() (x, y int, ok bool, err error) {
	if c.GuideXY == nil || strings.TrimSpace(*c.GuideXY) == "" {
		return 0, 0, false, nil
	}
	fields := strings.Fields(*c.GuideXY)
	if len(fields) != 2 {
		return 0, 0, false, fmt.Errorf("guide_xy must be \"x y\", got %q", *c.GuideXY)
	}
	if x, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, false, fmt.Errorf("invalid guide x: %w", err)
	}
	if y, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, false, fmt.Errorf("invalid guide y: %w", err)
	}
	return x, y, true, nil
}

// KeymapPath returns the typing-mode keymap file
func (c *Config) KeymapPath() string {
	if c.Keymap != nil && *c.Keymap != "" {
		return *c.Keymap
	}
	return DefaultKeymap
}

// LogPath returns the log file override, or ""
func (c *Config) LogPath() string {
	if c.LogFile != nil {
		return *c.LogFile
	}
	return ""
}

// WordsPath returns the word list used for group names, or ""
func (c *Config) WordsPath() string {
	if c.WordsFile != nil {
		return *c.WordsFile
	}
	return ""
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func intField(p func(c *Config) **int) field {
	return field{
		get: func(c *Config) string {
			if v := *p(c); v != nil {
				return strconv.Itoa(*v)
			}
			return ""
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("must be an integer: %s", v)
			}
			*p(c) = &n
			return nil
		},
	}
}

func boolField(p func(c *Config) **bool) field {
	return field{
		get: func(c *Config) string {
			if v := *p(c); v != nil {
				return strconv.FormatBool(*v)
			}
			return ""
		},
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("must be 'true' or 'false': %s", v)
			}
			*p(c) = &b
			return nil
		},
	}
}

func stringField(p func(c *Config) **string) field {
	return field{
		get: func(c *Config) string {
			if v := *p(c); v != nil {
				return *v
			}
			return ""
		},
		set: func(c *Config, v string) error {
			*p(c) = &v
			return nil
		},
	}
}

var fields = map[string]field{
	"autosave_interval_s": intField(func(c *Config) **int { return &c.AutosaveIntervalS }),
	"autosave_path":       stringField(func(c *Config) **string { return &c.AutosavePath }),
	"autosave_keep":       intField(func(c *Config) **int { return &c.AutosaveKeep }),
	"autosave_git":        boolField(func(c *Config) **bool { return &c.AutosaveGit }),
	"add_baseframe":       boolField(func(c *Config) **bool { return &c.AddBaseFrame }),
	"default_color":       stringField(func(c *Config) **string { return &c.DefaultColor }),
	"guide_xy":            stringField(func(c *Config) **string { return &c.GuideXY }),
	"keymap":              stringField(func(c *Config) **string { return &c.Keymap }),
	"log_file":            stringField(func(c *Config) **string { return &c.LogFile }),
	"words_file":          stringField(func(c *Config) **string { return &c.WordsFile }),
}

// Keys returns the settable configuration keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value of key, or "" when unset. Binding overrides are
// addressed as "bindings.<key>".
func (c *Config) Get(key string) (string, error) {
	if k, ok := strings.CutPrefix(key, "bindings."); ok {
		return c.Bindings[k], nil
	}
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return f.get(c), nil
}

// Set parses and stores value under key
func (c *Config) Set(key, value string) error {
	if k, ok := strings.CutPrefix(key, "bindings."); ok {
		if c.Bindings == nil {
			c.Bindings = make(map[string]string)
		}
		if value == "" {
			delete(c.Bindings, k)
		} else {
			c.Bindings[k] = value
		}
		return nil
	}
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}
