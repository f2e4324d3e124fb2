package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"todoshell/pkg/keymaps"
)

// AppName names the config directory and environment prefix
const AppName = "todoshell"

// Config holds the application configuration
type Config struct {
	Database   DatabaseConfig    `mapstructure:"database"`
	KeyMap     map[string]string `mapstructure:"keymap"`
	StylesFile string            `mapstructure:"styles_file"`
	LogFile    string            `mapstructure:"log_file"`
	Verbose    bool              `mapstructure:"verbose"`
}

// DatabaseConfig selects the storage driver. DSN is a file path for sqlite3
// and a connection string for postgres.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor    string `mapstructure:"border_color" json:"border_color"`
	AccentColor    string `mapstructure:"accent_color" json:"accent_color"`
	SecondaryColor string `mapstructure:"secondary_color" json:"secondary_color"`

	// Text colors
	NormalTextColor   string `mapstructure:"normal_text_color" json:"normal_text_color"`
	MutedTextColor    string `mapstructure:"muted_text_color" json:"muted_text_color"`
	SelectedTextColor string `mapstructure:"selected_text_color" json:"selected_text_color"`
	SelectedBgColor   string `mapstructure:"selected_bg_color" json:"selected_bg_color"`
	ErrorColor        string `mapstructure:"error_color" json:"error_color"`

	// Item colors
	PriorityColor  string `mapstructure:"priority_color" json:"priority_color"`
	CompletedColor string `mapstructure:"completed_color" json:"completed_color"`
}

// DefaultStyles is a blue-grey primary palette with a red secondary color
func DefaultStyles() Styles {
	return Styles{
		BorderColor:       "240",
		AccentColor:       "#607d8b",
		SecondaryColor:    "#f44336",
		NormalTextColor:   "252",
		MutedTextColor:    "243",
		SelectedTextColor: "229",
		SelectedBgColor:   "#455a64",
		ErrorColor:        "#f44336",
		PriorityColor:     "#ff9800",
		CompletedColor:    "243",
	}
}

// Dir returns ~/.config/todoshell
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// SetDefaults registers the default configuration on v
func SetDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", filepath.Join(configDir, "todo.db"))
	v.SetDefault("keymap", keymaps.GetDefaultKeyMappings())
	v.SetDefault("styles_file", filepath.Join(configDir, "styles.json"))
	v.SetDefault("log_file", "")
	v.SetDefault("verbose", false)
}

// Load reads the configuration into v. When configPath is empty the default
// ~/.config/todoshell/config.json is used and created on first run.
func Load(v *viper.Viper, configPath string) (Config, Styles, error) {
	configDir, err := Dir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	SetDefaults(v, configDir)
	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	createIfMissing := configPath == ""
	if configPath == "" {
		configPath = filepath.Join(configDir, "config.json")
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return Config{}, Styles{}, fmt.Errorf("read config: %w", err)
		}
		if !createIfMissing {
			return Config{}, Styles{}, fmt.Errorf("config file %s: %w", configPath, err)
		}
		// Config file not found, create default config
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return Config{}, Styles{}, err
		}
		if err := v.WriteConfigAs(configPath); err != nil {
			return Config{}, Styles{}, fmt.Errorf("write default config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, Styles{}, fmt.Errorf("decode config: %w", err)
	}
	// keys read back from a file are lowercased by viper, defaults are not
	keyMap := make(map[string]string, len(cfg.KeyMap))
	for action, keys := range cfg.KeyMap {
		keyMap[strings.ToLower(action)] = keys
	}
	cfg.KeyMap = keyMap

	// Now load the styles file
	styles, err := LoadStyles(cfg.StylesFile)
	if err != nil {
		return cfg, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return cfg, styles, nil
}

// LoadStyles loads the theme, writing the defaults when the file is missing.
// Colors left out of the file keep their default value.
func LoadStyles(stylesPath string) (Styles, error) {
	defaults := DefaultStyles()
	if stylesPath == "" {
		return defaults, nil
	}

	sv := viper.New()
	sv.SetConfigFile(stylesPath)
	sv.SetConfigType("json")
	for key, value := range map[string]string{
		"border_color":        defaults.BorderColor,
		"accent_color":        defaults.AccentColor,
		"secondary_color":     defaults.SecondaryColor,
		"normal_text_color":   defaults.NormalTextColor,
		"muted_text_color":    defaults.MutedTextColor,
		"selected_text_color": defaults.SelectedTextColor,
		"selected_bg_color":   defaults.SelectedBgColor,
		"error_color":         defaults.ErrorColor,
		"priority_color":      defaults.PriorityColor,
		"completed_color":     defaults.CompletedColor,
	} {
		sv.SetDefault(key, value)
	}

	if err := sv.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return defaults, err
		}
		if err := os.MkdirAll(filepath.Dir(stylesPath), 0755); err != nil {
			return defaults, err
		}
		if err := sv.WriteConfigAs(stylesPath); err != nil {
			return defaults, err
		}
		return defaults, nil
	}

	var styles Styles
	if err := sv.Unmarshal(&styles); err != nil {
		return defaults, err
	}
	return styles, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
