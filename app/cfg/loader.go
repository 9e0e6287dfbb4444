package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const (
	DefaultDataDir         = "./data"
	DefaultSubmissionLimit = 20
	DefaultTimeFilter      = "month"
	DefaultUserAgent       = "redwall gallery client (github.com/virtualtam/redwall)"

	dbFilename = "catalog.db"
)

var DefaultSubreddits = []string{"EarthPorn", "NaturePics"}

var validTimeFilters = map[string]bool{
	"hour":  true,
	"day":   true,
	"week":  true,
	"month": true,
	"year":  true,
	"all":   true,
}

type rawCfg struct {
	ConfigPath string `short:"c" long:"config" env:"REDWALL_CONFIG" description:"Configuration file path"`
	DataDir    string `long:"data-dir" env:"REDWALL_DATA_DIR" description:"Directory for the catalog database and downloaded images"`
	Debug      bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	ScreenWidth  int `long:"width" env:"REDWALL_WIDTH" description:"Override the detected screen width in pixels"`
	ScreenHeight int `long:"height" env:"REDWALL_HEIGHT" description:"Override the detected screen height in pixels"`

	FilenameOnly bool `short:"f" long:"filename" description:"Only print the local file path (current and info commands)"`
}

var globalCfg *Cfg

// Load parses command-line flags and environment variables, then merges in
// the YAML configuration file. The returned args hold the remaining
// positional arguments (command name and its operands).
func Load() (*Cfg, []string, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS] COMMAND [ARGS]"

	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil, nil
			}
		}
		return nil, nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	fileConfig, path, err := loadFile(raw.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	cfg := &Cfg{
		ConfigPath:      path,
		DataDir:         cmp.Or(raw.DataDir, fileConfig.Gather.DataDir, DefaultDataDir),
		Debug:           raw.Debug,
		ScreenWidth:     raw.ScreenWidth,
		ScreenHeight:    raw.ScreenHeight,
		FilenameOnly:    raw.FilenameOnly,
		Subreddits:      fileConfig.Gather.Subreddits,
		SubmissionLimit: fileConfig.Gather.SubmissionLimit,
		TimeFilter:      fileConfig.Gather.TimeFilter,
		UserAgent:       fileConfig.Reddit.UserAgent,
		Version:         GetVersion(),
	}

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.DBPath = filepath.Join(cfg.DataDir, dbFilename)

	globalCfg = cfg

	return cfg, args, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// loadFile reads the first configuration file found among the explicit path
// and the default locations. A missing file is not an error; defaults apply.
func loadFile(explicitPath string) (*FileConfig, string, error) {
	var fileConfig FileConfig

	for _, path := range searchPaths(explicitPath) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read configuration file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, "", fmt.Errorf("failed to parse configuration file %s: %w", path, err)
		}

		return &fileConfig, path, nil
	}

	return &fileConfig, "", nil
}

func searchPaths(explicitPath string) []string {
	var paths []string

	if explicitPath != "" {
		paths = append(paths, explicitPath)
	}

	paths = append(paths, "redwall.yaml")

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "redwall.yaml"))
	}

	return paths
}

func setDefaults(cfg *Cfg) {
	if len(cfg.Subreddits) == 0 {
		cfg.Subreddits = DefaultSubreddits
	}
	if cfg.SubmissionLimit == 0 {
		cfg.SubmissionLimit = DefaultSubmissionLimit
	}
	if cfg.TimeFilter == "" {
		cfg.TimeFilter = DefaultTimeFilter
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
}

func validate(cfg *Cfg) error {
	if cfg.SubmissionLimit < 0 {
		return fmt.Errorf("submission limit must be non-negative")
	}
	if !validTimeFilters[cfg.TimeFilter] {
		return fmt.Errorf("invalid time filter: %s", cfg.TimeFilter)
	}
	if cfg.ScreenWidth < 0 || cfg.ScreenHeight < 0 {
		return fmt.Errorf("screen dimensions must be non-negative")
	}
	return nil
}
