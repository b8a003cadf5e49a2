package env

import (
	"errors"
	"fmt"
	"os"
	"waykit/lib/configutil"
)

const ConfigFile = "waykit.json5"

type Screen struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type BrowserConfig struct {
	// Bin is the chromium binary to launch, when empty one is looked up or downloaded.
	Bin string `json:"bin"`
}

type YdotoolConfig struct {
	Bin       string `json:"bin"`
	DaemonBin string `json:"daemon_bin"`
}

type Config struct {
	// RootDir defaults to $HOME/pywaykit
	RootDir string        `json:"root_dir"`
	BaseURL string        `json:"base_url"`
	Screen  Screen        `json:"screen"`
	Browser BrowserConfig `json:"browser"`
	Ydotool YdotoolConfig `json:"ydotool"`
}

// DefaultConfig returns the configuration used when no config file sets a value.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://web.whatsapp.com",
		Ydotool: YdotoolConfig{
			Bin:       "ydotool",
			DaemonBin: "ydotoold",
		},
	}
}

// LoadConfig searches up from the cwd for waykit.json5 (and its
// waykit.local.json5 override), a missing file just means defaults.
func LoadConfig() (Config, error) {
	cfg, err := configutil.ReadRecursively[Config](ConfigFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", ConfigFile, err)
	}
	return configutil.WithDefaults(cfg, DefaultConfig())
}
