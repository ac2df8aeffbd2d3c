package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/jfmyers9/verses/internal/export"
	"github.com/jfmyers9/verses/internal/resolve"
	"github.com/jfmyers9/verses/pkg/genius"
)

// Config holds application configuration
type Config struct {
	Genius GeniusConfig
	Search SearchConfig

	// Strip "[Verse 1]" style headers from scraped lyrics
	RemoveSectionHeaders bool

	HTTP   HTTPConfig
	Output OutputConfig

	// Directory holding the library database and search index
	// Default: $XDG_DATA_HOME/verses
	DataDir string
}

// GeniusConfig holds Genius API credentials
type GeniusConfig struct {
	AccessToken  string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// SearchConfig controls how queries are resolved
type SearchConfig struct {
	SkipNonSongs        bool
	ExcludedTerms       []string
	ReplaceDefaultTerms bool
	TakeFirstResult     bool
	GetFullInfo         bool
	IncludeFeatures     bool
	AllowNameChange     bool
	Sort                string
	PerPage             int
}

// HTTPConfig controls the Genius transport
type HTTPConfig struct {
	Timeout   time.Duration
	Retries   int
	SleepTime time.Duration
}

// OutputConfig controls saved lyrics files
type OutputConfig struct {
	Dir    string
	Format string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// VERSES_GENIUS_ACCESS_TOKEN overrides genius.access_token
	v.SetEnvPrefix("VERSES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Genius: GeniusConfig{
			AccessToken:  v.GetString("genius.access_token"),
			ClientID:     v.GetString("genius.client_id"),
			ClientSecret: v.GetString("genius.client_secret"),
			RedirectURI:  v.GetString("genius.redirect_uri"),
		},
		Search: SearchConfig{
			SkipNonSongs:        v.GetBool("search.skip_non_songs"),
			ExcludedTerms:       v.GetStringSlice("search.excluded_terms"),
			ReplaceDefaultTerms: v.GetBool("search.replace_default_terms"),
			TakeFirstResult:     v.GetBool("search.take_first_result"),
			GetFullInfo:         v.GetBool("search.get_full_info"),
			IncludeFeatures:     v.GetBool("search.include_features"),
			AllowNameChange:     v.GetBool("search.allow_name_change"),
			Sort:                v.GetString("search.sort"),
			PerPage:             v.GetInt("search.per_page"),
		},
		RemoveSectionHeaders: v.GetBool("lyrics.remove_section_headers"),
		HTTP: HTTPConfig{
			Timeout:   v.GetDuration("http.timeout"),
			Retries:   v.GetInt("http.retries"),
			SleepTime: v.GetDuration("http.sleep_time"),
		},
		Output: OutputConfig{
			Dir:    v.GetString("output.dir"),
			Format: v.GetString("output.format"),
		},
		DataDir: v.GetString("data_dir"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("genius.access_token", "")
	v.SetDefault("genius.client_id", "")
	v.SetDefault("genius.client_secret", "")
	v.SetDefault("genius.redirect_uri", "")

	v.SetDefault("search.skip_non_songs", true)
	v.SetDefault("search.excluded_terms", []string{})
	v.SetDefault("search.replace_default_terms", false)
	v.SetDefault("search.take_first_result", false)
	v.SetDefault("search.get_full_info", true)
	v.SetDefault("search.include_features", false)
	v.SetDefault("search.allow_name_change", true)
	v.SetDefault("search.sort", string(genius.SortPopularity))
	v.SetDefault("search.per_page", 20)

	v.SetDefault("lyrics.remove_section_headers", false)

	v.SetDefault("http.timeout", genius.DefaultTimeout)
	v.SetDefault("http.retries", 0)
	v.SetDefault("http.sleep_time", 200*time.Millisecond)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", string(export.FormatJSON))

	v.SetDefault("data_dir", filepath.Join(xdg.DataHome, "verses"))
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "verses")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.save(getConfigDir())
}

func (c *Config) save(configDir string) error {
	v := viper.New()

	configFile := filepath.Join(configDir, "config.yaml")

	v.Set("genius.access_token", c.Genius.AccessToken)
	v.Set("genius.client_id", c.Genius.ClientID)
	v.Set("genius.client_secret", c.Genius.ClientSecret)
	v.Set("genius.redirect_uri", c.Genius.RedirectURI)

	v.Set("search.skip_non_songs", c.Search.SkipNonSongs)
	v.Set("search.excluded_terms", c.Search.ExcludedTerms)
	v.Set("search.replace_default_terms", c.Search.ReplaceDefaultTerms)
	v.Set("search.take_first_result", c.Search.TakeFirstResult)
	v.Set("search.get_full_info", c.Search.GetFullInfo)
	v.Set("search.include_features", c.Search.IncludeFeatures)
	v.Set("search.allow_name_change", c.Search.AllowNameChange)
	v.Set("search.sort", c.Search.Sort)
	v.Set("search.per_page", c.Search.PerPage)

	v.Set("lyrics.remove_section_headers", c.RemoveSectionHeaders)

	v.Set("http.timeout", c.HTTP.Timeout.String())
	v.Set("http.retries", c.HTTP.Retries)
	v.Set("http.sleep_time", c.HTTP.SleepTime.String())

	v.Set("output.dir", c.Output.Dir)
	v.Set("output.format", c.Output.Format)

	v.Set("data_dir", c.DataDir)

	return v.WriteConfigAs(configFile)
}

// ClientConfig builds the Genius client configuration.
func (c *Config) ClientConfig(logger genius.Logger) genius.Config {
	return genius.Config{
		AccessToken:          c.Genius.AccessToken,
		ClientID:             c.Genius.ClientID,
		ClientSecret:         c.Genius.ClientSecret,
		RedirectURI:          c.Genius.RedirectURI,
		Timeout:              c.HTTP.Timeout,
		Retries:              c.HTTP.Retries,
		SleepTime:            c.HTTP.SleepTime,
		RemoveSectionHeaders: c.RemoveSectionHeaders,
		Logger:               logger,
	}
}

// ResolveOptions builds resolver options from the search section.
func (c *Config) ResolveOptions() resolve.Options {
	return resolve.Options{
		SkipNonSongs:        c.Search.SkipNonSongs,
		ExcludedTerms:       c.Search.ExcludedTerms,
		ReplaceDefaultTerms: c.Search.ReplaceDefaultTerms,
		TakeFirstResult:     c.Search.TakeFirstResult,
		GetFullInfo:         c.Search.GetFullInfo,
		IncludeFeatures:     c.Search.IncludeFeatures,
		AllowNameChange:     c.Search.AllowNameChange,
		Sort:                genius.Sort(c.Search.Sort),
		PerPage:             c.Search.PerPage,
	}
}

// ExportOptions builds file export options from the output section.
func (c *Config) ExportOptions() (export.Options, error) {
	format, err := export.ParseFormat(c.Output.Format)
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{Dir: c.Output.Dir, Format: format}, nil
}

// LibraryPath returns the path of the library database.
func (c *Config) LibraryPath() string {
	return filepath.Join(c.DataDir, "library.db")
}

// IndexPath returns the path of the lyrics search index.
func (c *Config) IndexPath() string {
	return filepath.Join(c.DataDir, "lyrics.bleve")
}
