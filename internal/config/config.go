// Package config loads the calcpdf configuration from defaults, an optional
// configuration file and CALCPDF_ environment variables.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/report"
)

// EnvPrefix prefixes the environment variables overriding configuration
// keys, e.g. CALCPDF_REPORT_LOCALE for report.locale.
const EnvPrefix = "calcpdf"

// Config is the typed configuration.
type Config struct {
	Page    Page    `mapstructure:"page"`
	Company Company `mapstructure:"company"`
	Report  Report  `mapstructure:"report"`
	Log     Log     `mapstructure:"log"`
	Server  Server  `mapstructure:"server"`
}

// Page holds the layout of generated documents.
type Page struct {
	Size        string `mapstructure:"size"`
	Orientation string `mapstructure:"orientation"`
	Unit        string `mapstructure:"unit"`
	FontDir     string `mapstructure:"font_dir"`
}

// Company is printed in the header of every report.
type Company struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	URL     string `mapstructure:"url"`
}

// Report holds the report settings.
type Report struct {
	Locale      string   `mapstructure:"locale"`
	MinMargin   float64  `mapstructure:"min_margin"`
	QRBaseURL   string   `mapstructure:"qr_base_url"`
	DraftStates []string `mapstructure:"draft_states"`
}

// Log holds the logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server holds the HTTP server settings.
type Server struct {
	Addr string `mapstructure:"addr"`
}

var defaults = map[string]any{
	"page.size":           "A4",
	"page.orientation":    "portrait",
	"page.unit":           "mm",
	"page.font_dir":       "",
	"company.name":        "",
	"company.address":     "",
	"company.url":         "",
	"report.locale":       "de-CH",
	"report.min_margin":   0.1,
	"report.qr_base_url":  "",
	"report.draft_states": []string{},
	"log.level":           "info",
	"log.format":          "text",
	"server.addr":         ":8080",
}

// New returns a viper instance with the defaults and the environment
// bindings set.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. path may be empty, in which case only the
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return Decode(v)
}

// Decode unmarshals v into a Config.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	cfg, err := Decode(New())
	if err != nil {
		panic(err)
	}
	return cfg
}

// IsDraftState reports whether calculations in the state with the given
// code are stamped as drafts.
func (c *Config) IsDraftState(code string) bool {
	return slices.ContainsFunc(c.Report.DraftStates, func(s string) bool {
		return strings.EqualFold(s, code)
	})
}

// DocumentOptions returns the document options for the page and company
// settings.
func (c *Config) DocumentOptions() []calcpdf.Option {
	opts := []calcpdf.Option{
		calcpdf.WithPageSize(c.Page.Size),
		calcpdf.WithOrientation(c.Page.Orientation),
		calcpdf.WithUnit(c.Page.Unit),
		calcpdf.WithCompany(calcpdf.Company{
			Name:    c.Company.Name,
			Address: c.Company.Address,
			URL:     c.Company.URL,
		}),
	}
	if c.Page.FontDir != "" {
		opts = append(opts, calcpdf.WithFontDir(c.Page.FontDir))
	}
	return opts
}

// ReportOptions returns the report options for the calculation with the
// given id, 0 for the list reports.
func (c *Config) ReportOptions(id int) report.Options {
	return report.Options{
		ID:          id,
		Locale:      c.Report.Locale,
		MinMargin:   c.Report.MinMargin,
		QRBaseURL:   c.Report.QRBaseURL,
		DraftStates: c.Report.DraftStates,
	}
}
