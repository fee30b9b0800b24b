package config

// SiteConfig describes the portfolio owner and the runtime around the games.
type SiteConfig struct {
	Owner    OwnerConfig    `yaml:"owner"`
	Theme    ThemeConfig    `yaml:"theme"`
	Sound    SoundConfig    `yaml:"sound"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Terminal TerminalConfig `yaml:"terminal"`
}

// OwnerConfig is the profile shown by about, whoami and contact.
type OwnerConfig struct {
	Name     string            `yaml:"name"`
	Handle   string            `yaml:"handle"`
	Title    string            `yaml:"title"`
	Location string            `yaml:"location"`
	Email    string            `yaml:"email"`
	Bio      string            `yaml:"bio"`
	Skills   []string          `yaml:"skills"`
	Links    map[string]string `yaml:"links"`
}

// ThemeConfig selects the palette and optionally adds or patches palettes.
type ThemeConfig struct {
	Default  string                       `yaml:"default"`
	Palettes map[string]map[string]string `yaml:"palettes"`
}

// SoundConfig holds the default sound preferences.
type SoundConfig struct {
	Enabled       bool    `yaml:"enabled"`
	ReducedMotion bool    `yaml:"reduced_motion"`
	Music         bool    `yaml:"music"` // background melody while playing
	Volume        float64 `yaml:"volume"` // in beep's logarithmic units, 0 is unchanged
}

// StorageConfig locates the content database and the public bucket host.
type StorageConfig struct {
	DBPath        string `yaml:"db_path"`
	BucketBaseURL string `yaml:"bucket_base_url"`
	ResumeFile    string `yaml:"resume_file"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// TerminalConfig tunes the command terminal.
type TerminalConfig struct {
	Prompt string `yaml:"prompt"`
	Banner string `yaml:"banner"`
}
