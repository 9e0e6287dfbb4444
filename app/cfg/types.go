package cfg

type Cfg struct {
	// Runtime configuration
	ConfigPath string
	DataDir    string
	DBPath     string
	Debug      bool

	// Geometry override (0 means autodetect)
	ScreenWidth  int
	ScreenHeight int

	// Output behavior for the current and info commands
	FilenameOnly bool

	// Gathering configuration
	Subreddits      []string
	SubmissionLimit int
	TimeFilter      string
	UserAgent       string

	// Application metadata
	Version string
}

// FileConfig mirrors the redwall.yaml layout.
type FileConfig struct {
	Reddit struct {
		UserAgent string `yaml:"user_agent"`
	} `yaml:"reddit"`
	Gather struct {
		DataDir         string   `yaml:"data_dir"`
		SubmissionLimit int      `yaml:"submission_limit"`
		TimeFilter      string   `yaml:"time_filter"`
		Subreddits      []string `yaml:"subreddits"`
	} `yaml:"gather"`
}
