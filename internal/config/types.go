package config

import "github.com/ziadkadry99/casegallery/internal/carousel"

// HighlightMode selects where code sections are syntax highlighted.
type HighlightMode string

const (
	HighlightClient HighlightMode = "client" // Prism in the browser
	HighlightServer HighlightMode = "server" // chroma at render time
)

// LogLevel controls console and file logging.
type LogLevel string

const (
	LogNone   LogLevel = "none"
	LogNormal LogLevel = "normal"
	LogDebug  LogLevel = "debug"
)

// Config is the top-level casegallery configuration, corresponding to .casegallery.yml.
type Config struct {
	Title           string           `yaml:"title" koanf:"title"`
	Data            string           `yaml:"data" koanf:"data"`
	StaticDir       string           `yaml:"static_dir" koanf:"static_dir"`
	StaticExclude   []string         `yaml:"static_exclude,omitempty" koanf:"static_exclude"`
	OutputDir       string           `yaml:"output_dir" koanf:"output_dir"`
	DefaultLanguage string           `yaml:"default_language" koanf:"default_language"`
	CodeHighlight   HighlightMode    `yaml:"code_highlight" koanf:"code_highlight"`
	HighlightStyle  string           `yaml:"highlight_style" koanf:"highlight_style"`
	Thumbnails      ThumbnailConfig  `yaml:"thumbnails" koanf:"thumbnails"`
	Videos          []carousel.Video `yaml:"videos" koanf:"videos"`
	VideosDir       string           `yaml:"videos_dir" koanf:"videos_dir"`
	Server          ServerConfig     `yaml:"server" koanf:"server"`
	Log             LogConfig        `yaml:"log" koanf:"log"`
}

// ThumbnailConfig controls thumbnail generation for inline images.
type ThumbnailConfig struct {
	Enabled  bool `yaml:"enabled" koanf:"enabled"`
	MaxWidth int  `yaml:"max_width" koanf:"max_width"`
}

// ServerConfig holds settings for `casegallery serve`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool `yaml:"watch" koanf:"watch"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       LogLevel `yaml:"level" koanf:"level"`
	Destination string   `yaml:"destination,omitempty" koanf:"destination"`
}
