// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/chatconnect-tui/internal/util"
	"github.com/jeranaias/chatconnect-tui/internal/window"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete chatconnect configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	API           APIConfig           `toml:"api" json:"api"`
	Realtime      RealtimeConfig      `toml:"realtime" json:"realtime"`
	History       HistoryConfig       `toml:"history" json:"history"`
	UI            UIConfig            `toml:"ui" json:"ui"`
	Notifications NotificationsConfig `toml:"notifications" json:"notifications"`
	Session       SessionConfig       `toml:"session" json:"session"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL     string  `toml:"base_url" json:"base_url"`
	TimeoutSecs int     `toml:"timeout_secs" json:"timeout_secs"`
	RateLimit   float64 `toml:"rate_limit" json:"rate_limit"` // requests per second
	RateBurst   int     `toml:"rate_burst" json:"rate_burst"`
	MaxRetries  int     `toml:"max_retries" json:"max_retries"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// RealtimeConfig configures the WebSocket channel.
type RealtimeConfig struct {
	Enabled          bool   `toml:"enabled" json:"enabled"`
	SocketURL        string `toml:"socket_url" json:"socket_url"`
	ReconnectSecs    int    `toml:"reconnect_secs" json:"reconnect_secs"`
	MaxReconnectSecs int    `toml:"max_reconnect_secs" json:"max_reconnect_secs"`
}

// HistoryConfig sets the geometry of the history table and its dataset.
// Heights are in virtual pixels; the table shows one row per line.
type HistoryConfig struct {
	RowHeight      int `toml:"row_height" json:"row_height"`
	ViewportHeight int `toml:"viewport_height" json:"viewport_height"`
	Overscan       int `toml:"overscan" json:"overscan"`
	MockRows       int `toml:"mock_rows" json:"mock_rows"`
}

// WindowConfig converts the history settings to a windowing config.
func (h HistoryConfig) WindowConfig() window.Config {
	return window.Config{
		RowHeight:      h.RowHeight,
		ViewportHeight: h.ViewportHeight,
		Overscan:       h.Overscan,
	}
}

// UIConfig holds display preferences edited from the Settings tab.
type UIConfig struct {
	DarkMode         bool   `toml:"dark_mode" json:"dark_mode"`
	Language         string `toml:"language" json:"language"`
	SidebarCollapsed bool   `toml:"sidebar_collapsed" json:"sidebar_collapsed"`
	SearchDebounceMs int    `toml:"search_debounce_ms" json:"search_debounce_ms"`
	RenderMarkdown   bool   `toml:"render_markdown" json:"render_markdown"`
}

// SearchDebounce returns the contact search debounce interval.
func (u UIConfig) SearchDebounce() time.Duration {
	return time.Duration(u.SearchDebounceMs) * time.Millisecond
}

// NotificationsConfig holds the notification toggles.
type NotificationsConfig struct {
	Email   bool `toml:"email" json:"email"`
	Push    bool `toml:"push" json:"push"`
	SMS     bool `toml:"sms" json:"sms"`
	Desktop bool `toml:"desktop" json:"desktop"`
}

// SessionConfig controls session lifetime and local persistence.
type SessionConfig struct {
	// IdleTimeoutMins logs the user out after inactivity. 0 disables.
	IdleTimeoutMins int `toml:"idle_timeout_mins" json:"idle_timeout_mins"`

	// AutoSaveSecs is how often unsent drafts are flushed to disk.
	AutoSaveSecs int `toml:"auto_save_secs" json:"auto_save_secs"`

	// KDFIterations is the PBKDF2 cost used to seal the stored token.
	KDFIterations int `toml:"kdf_iterations" json:"kdf_iterations"`

	// ProfileSaveDelayMs simulates the profile update round trip.
	ProfileSaveDelayMs int `toml:"profile_save_delay_ms" json:"profile_save_delay_ms"`
}

// Languages offered in Settings.
var Languages = []string{"English (US)", "Spanish", "French"}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// Default returns the built-in configuration.
func Default() *Config {
	wc := window.DefaultConfig()
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:     "http://localhost:8080/api",
			TimeoutSecs: 20,
			RateLimit:   10,
			RateBurst:   20,
			MaxRetries:  3,
		},
		Realtime: RealtimeConfig{
			Enabled:          true,
			SocketURL:        "ws://localhost:8080/ws",
			ReconnectSecs:    2,
			MaxReconnectSecs: 30,
		},
		History: HistoryConfig{
			RowHeight:      wc.RowHeight,
			ViewportHeight: wc.ViewportHeight,
			Overscan:       wc.Overscan,
			MockRows:       1500,
		},
		UI: UIConfig{
			DarkMode:         true,
			Language:         Languages[0],
			SearchDebounceMs: 300,
			RenderMarkdown:   true,
		},
		Notifications: NotificationsConfig{
			Email:   true,
			Push:    false,
			SMS:     true,
			Desktop: false,
		},
		Session: SessionConfig{
			IdleTimeoutMins:    0,
			AutoSaveSecs:       10,
			KDFIterations:      100000,
			ProfileSaveDelayMs: 1000,
		},
	}
}

// =============================================================================
// PATH FUNCTIONS
// =============================================================================

// DirEnv overrides the data directory, mainly for tests and sandboxes.
const DirEnv = "CHATCONNECT_HOME"

// ConfigDir returns the chatconnect data directory (~/.chatconnect).
func ConfigDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".chatconnect"), nil
}

// ConfigPathTOML returns the path of config.toml.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path of config.json.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads configuration from path, or from the default locations when
// path is empty (TOML first, then JSON). A missing file yields defaults.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = findConfigFile(); err != nil {
			return nil, err
		}
	}

	if path != "" {
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			err = LoadJSON(cfg, path)
		default:
			err = LoadTOML(cfg, path)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return "", nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero setting.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = d.API.TimeoutSecs
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = d.API.RateLimit
	}
	if c.API.RateBurst == 0 {
		c.API.RateBurst = d.API.RateBurst
	}
	if c.Realtime.ReconnectSecs == 0 {
		c.Realtime.ReconnectSecs = d.Realtime.ReconnectSecs
	}
	if c.Realtime.MaxReconnectSecs == 0 {
		c.Realtime.MaxReconnectSecs = d.Realtime.MaxReconnectSecs
	}
	if c.UI.Language == "" {
		c.UI.Language = d.UI.Language
	}
	if c.UI.SearchDebounceMs == 0 {
		c.UI.SearchDebounceMs = d.UI.SearchDebounceMs
	}
	if c.Session.KDFIterations == 0 {
		c.Session.KDFIterations = d.Session.KDFIterations
	}
	if c.Session.AutoSaveSecs == 0 {
		c.Session.AutoSaveSecs = d.Session.AutoSaveSecs
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to path, choosing the format from the extension. An empty
// path means the default config.toml.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPathTOML(); err != nil {
			return err
		}
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatconnect configuration file\n")
	buf.WriteString("# Generated by chatconnect - edit with care\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every invalid setting.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and returns ValidateErrors if any setting
// is unusable.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// API
	if err := validateURL(c.API.BaseURL, "http", "https"); err != nil {
		add("api.base_url", "%v", err)
	}
	if c.API.TimeoutSecs <= 0 {
		add("api.timeout_secs", "must be positive, got %d", c.API.TimeoutSecs)
	}
	if c.API.RateLimit < 0 {
		add("api.rate_limit", "must not be negative")
	}
	if c.API.RateBurst < 0 {
		add("api.rate_burst", "must not be negative")
	}
	if c.API.MaxRetries < 0 || c.API.MaxRetries > 10 {
		add("api.max_retries", "must be between 0 and 10, got %d", c.API.MaxRetries)
	}

	// Realtime
	if c.Realtime.Enabled {
		if err := validateURL(c.Realtime.SocketURL, "ws", "wss"); err != nil {
			add("realtime.socket_url", "%v", err)
		}
	}
	if c.Realtime.ReconnectSecs < 0 || c.Realtime.MaxReconnectSecs < c.Realtime.ReconnectSecs {
		add("realtime.reconnect_secs", "must be >= 0 and <= max_reconnect_secs")
	}

	// History
	if err := c.History.WindowConfig().Validate(); err != nil {
		switch {
		case c.History.RowHeight <= 0:
			add("history.row_height", "must be positive, got %d", c.History.RowHeight)
		case c.History.ViewportHeight <= 0:
			add("history.viewport_height", "must be positive, got %d", c.History.ViewportHeight)
		default:
			add("history.overscan", "must not be negative, got %d", c.History.Overscan)
		}
	}
	if c.History.MockRows < 0 {
		add("history.mock_rows", "must not be negative")
	}

	// UI
	if !validLanguage(c.UI.Language) {
		add("ui.language", "unknown language %q, must be one of: %s", c.UI.Language, strings.Join(Languages, ", "))
	}
	if c.UI.SearchDebounceMs < 0 {
		add("ui.search_debounce_ms", "must not be negative")
	}

	// Session
	if c.Session.IdleTimeoutMins < 0 {
		add("session.idle_timeout_mins", "must not be negative")
	}
	if c.Session.KDFIterations < 10000 {
		add("session.kdf_iterations", "must be at least 10000, got %d", c.Session.KDFIterations)
	}
	if c.Session.ProfileSaveDelayMs < 0 {
		add("session.profile_save_delay_ms", "must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			if u.Host == "" {
				return fmt.Errorf("URL %q has no host", raw)
			}
			return nil
		}
	}
	return fmt.Errorf("URL %q must use %s", raw, strings.Join(schemes, " or "))
}

func validLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - CHATCONNECT_API_URL: overrides api.base_url
//   - CHATCONNECT_SOCKET_URL: overrides realtime.socket_url
//   - CHATCONNECT_OFFLINE: "1" or "true" disables the realtime channel
//   - CHATCONNECT_API_TIMEOUT: overrides api.timeout_secs
//   - CHATCONNECT_DARK_MODE: overrides ui.dark_mode
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHATCONNECT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("CHATCONNECT_SOCKET_URL"); v != "" {
		c.Realtime.SocketURL = v
	}
	if v := os.Getenv("CHATCONNECT_OFFLINE"); v != "" {
		c.Realtime.Enabled = !ParseBool(v)
	}
	if v := os.Getenv("CHATCONNECT_API_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("CHATCONNECT_DARK_MODE"); v != "" {
		c.UI.DarkMode = ParseBool(v)
	}
}

// ParseBool accepts 1/true/yes/on in any case.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get returns a value by dot-notation key, e.g. "history.row_height".
func (c *Config) Get(key string) (any, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value by dot-notation key. String values are converted to
// the field's type. The config is not re-validated; call Validate.
func (c *Config) Set(key string, value any) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("%s is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tomlName(t.Field(i)) == strings.ToLower(name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tomlName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return tag
}

func setFieldValue(field reflect.Value, value any) error {
	if s, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(s)
			return nil
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(n)
			return nil
		case reflect.Float64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(f)
			return nil
		case reflect.Bool:
			field.SetBool(ParseBool(s))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return errors.New("cannot assign nil")
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Keys returns every settable key in dot notation, sorted.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + tomlName(f)
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// String renders the config as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return buf.String()
}
