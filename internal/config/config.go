package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"pagedeck/internal/domain"
	"pagedeck/internal/eventbus"
)

// FileName is the config file looked up in the user config directory
const FileName = "config.toml"

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version" mapstructure:"version"`
	Pages   []PageConfig `toml:"pages" mapstructure:"pages"`
	Menu    MenuSettings `toml:"menu" mapstructure:"menu"`
	UI      UISettings   `toml:"ui" mapstructure:"ui"`
}

// PageConfig is a page listed in the config file. Pages given on the
// command line replace these.
type PageConfig struct {
	Title string `toml:"title" mapstructure:"title"`
	Path  string `toml:"path" mapstructure:"path"`
}

// MenuSettings configures the tab strip. Sizes are in terminal cells.
type MenuSettings struct {
	Layout          string  `toml:"layout" mapstructure:"layout"`
	ItemWidth       float64 `toml:"item_width" mapstructure:"item_width"`
	Margin          float64 `toml:"margin" mapstructure:"margin"`
	Height          int     `toml:"height" mapstructure:"height"`
	IndicatorHeight int     `toml:"indicator_height" mapstructure:"indicator_height"`
	Centered        bool    `toml:"centered" mapstructure:"centered"`
	Position        string  `toml:"position" mapstructure:"position"` // top or bottom
	SelectedColor   string  `toml:"selected_color" mapstructure:"selected_color"`
	UnselectedColor string  `toml:"unselected_color" mapstructure:"unselected_color"`
	IndicatorColor  string  `toml:"indicator_color" mapstructure:"indicator_color"`
	Separators      bool    `toml:"separators" mapstructure:"separators"`
	SeparatorColor  string  `toml:"separator_color" mapstructure:"separator_color"`
	Hairline        bool    `toml:"hairline" mapstructure:"hairline"`
	HairlineColor   string  `toml:"hairline_color" mapstructure:"hairline_color"`
	AnimationMS     int     `toml:"animation_ms" mapstructure:"animation_ms"`
	Bounce          bool    `toml:"bounce" mapstructure:"bounce"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	RememberLastPage bool   `toml:"remember_last_page" mapstructure:"remember_last_page"`
	LastPage         int    `toml:"last_page" mapstructure:"last_page"`
	SyntaxStyle      string `toml:"syntax_style" mapstructure:"syntax_style"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "pagedeck", FileName),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// NewConfigServiceForPath creates a config service bound to an explicit file
func NewConfigServiceForPath(path string, bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults (with environment overrides applied).
func (cs *configService) Load() (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if _, statErr := os.Stat(cs.filePath); os.IsNotExist(statErr) {
		cfg, err = decode(newViper())
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:  cs.filePath,
			Pages: len(cfg.Pages),
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return decode(v)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Menu: MenuSettings{
			Layout:          "fixed",
			ItemWidth:       16,
			Margin:          2,
			Height:          1,
			IndicatorHeight: 1,
			Position:        "top",
			SelectedColor:   "#007AFF",
			UnselectedColor: "#8E8E93",
			IndicatorColor:  "#007AFF",
			SeparatorColor:  "#C7C7CC",
			Hairline:        true,
			HairlineColor:   "#3A3A3C",
			AnimationMS:     500,
			Bounce:          true,
		},
		UI: UISettings{
			SyntaxStyle: "monokai",
		},
	}
}

// Validate checks the settings that can be checked without knowing the pages
func (c *Config) Validate() error {
	var errs []error

	mode, err := domain.ParseLayoutMode(c.Menu.Layout)
	if err != nil {
		errs = append(errs, err)
	}
	if (mode == domain.LayoutFixedWidth || mode == domain.LayoutCentered) && c.Menu.ItemWidth <= 0 {
		errs = append(errs, fmt.Errorf("menu.item_width must be positive, got %v", c.Menu.ItemWidth))
	}
	if c.Menu.Margin < 0 {
		errs = append(errs, fmt.Errorf("menu.margin must not be negative, got %v", c.Menu.Margin))
	}
	if c.Menu.Height < 1 {
		errs = append(errs, fmt.Errorf("menu.height must be at least 1, got %d", c.Menu.Height))
	}
	if c.Menu.IndicatorHeight < 0 {
		errs = append(errs, fmt.Errorf("menu.indicator_height must not be negative, got %d", c.Menu.IndicatorHeight))
	}
	if c.Menu.AnimationMS <= 0 {
		errs = append(errs, fmt.Errorf("menu.animation_ms must be positive, got %d", c.Menu.AnimationMS))
	}
	switch strings.ToLower(c.Menu.Position) {
	case "", "top", "bottom":
	default:
		errs = append(errs, fmt.Errorf("menu.position must be top or bottom, got %q", c.Menu.Position))
	}
	for name, value := range map[string]string{
		"selected_color":   c.Menu.SelectedColor,
		"unselected_color": c.Menu.UnselectedColor,
		"indicator_color":  c.Menu.IndicatorColor,
		"separator_color":  c.Menu.SeparatorColor,
		"hairline_color":   c.Menu.HairlineColor,
	} {
		if value == "" {
			continue
		}
		if _, err := colorful.Hex(value); err != nil {
			errs = append(errs, fmt.Errorf("menu.%s: %q is not a hex colour", name, value))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LayoutMode returns the effective layout, folding the legacy centered flag
// into the centered mode.
func (m MenuSettings) LayoutMode() domain.LayoutMode {
	mode, err := domain.ParseLayoutMode(m.Layout)
	if err != nil {
		return domain.LayoutFixedWidth
	}
	if mode == domain.LayoutFixedWidth && m.Centered {
		return domain.LayoutCentered
	}
	return mode
}

// AtBottom reports whether the menu bar is drawn below the content
func (m MenuSettings) AtBottom() bool {
	return strings.EqualFold(m.Position, "bottom")
}

func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("version", def.Version)
	v.SetDefault("menu.layout", def.Menu.Layout)
	v.SetDefault("menu.item_width", def.Menu.ItemWidth)
	v.SetDefault("menu.margin", def.Menu.Margin)
	v.SetDefault("menu.height", def.Menu.Height)
	v.SetDefault("menu.indicator_height", def.Menu.IndicatorHeight)
	v.SetDefault("menu.centered", def.Menu.Centered)
	v.SetDefault("menu.position", def.Menu.Position)
	v.SetDefault("menu.selected_color", def.Menu.SelectedColor)
	v.SetDefault("menu.unselected_color", def.Menu.UnselectedColor)
	v.SetDefault("menu.indicator_color", def.Menu.IndicatorColor)
	v.SetDefault("menu.separators", def.Menu.Separators)
	v.SetDefault("menu.separator_color", def.Menu.SeparatorColor)
	v.SetDefault("menu.hairline", def.Menu.Hairline)
	v.SetDefault("menu.hairline_color", def.Menu.HairlineColor)
	v.SetDefault("menu.animation_ms", def.Menu.AnimationMS)
	v.SetDefault("menu.bounce", def.Menu.Bounce)
	v.SetDefault("ui.remember_last_page", def.UI.RememberLastPage)
	v.SetDefault("ui.last_page", def.UI.LastPage)
	v.SetDefault("ui.syntax_style", def.UI.SyntaxStyle)

	v.SetConfigType("toml")
	v.SetEnvPrefix("PAGEDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
