package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/BurntSushi/xdg"
)

type Config struct {
	// Commands used to talk to the audio server, the desktop and the bar
	Pactl, NotifySend, Eww string
	// Directory passed to eww --config (empty uses eww's default)
	EwwConfig string
	// Volume channel shown in the bar
	Channel string
	// notify-send urgency (low, normal, critical) and timeout
	Urgency   string
	TimeoutMS int
	// Re-read devices on udev events from these subsystems
	Hotplug    bool
	Subsystems []string
}

func defaultConfig() *Config {
	return &Config{
		Pactl:      "pactl",
		NotifySend: "notify-send",
		Eww:        "eww",
		Channel:    "front-left",
		Urgency:    "normal",
		TimeoutMS:  5000,
		Hotplug:    false,
		Subsystems: []string{"sound"},
	}
}

// configPath returns the config file location, or "" when there is none.
func configPath() string {
	paths := xdg.Paths{
		Override:  os.Getenv("AudioNotifyConfig"),
		XDGSuffix: "audio-notify",
	}
	path, err := paths.ConfigFile("config.toml")
	if err != nil {
		return ""
	}
	return path
}

// loadConfig reads path over the defaults. An empty path means defaults only.
func loadConfig(path string) (*Config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, err
	}
	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

func (c *Config) validate() error {
	switch c.Urgency {
	case "low", "normal", "critical":
	default:
		return errors.New("Urgency must be low, normal or critical, got: " + c.Urgency)
	}
	if c.TimeoutMS < 0 {
		return errors.New("TimeoutMS must not be negative")
	}
	return nil
}

// overrideSubsystems replaces the configured udev subsystems with those
// given on the command line. "all" drops the filter.
func (c *Config) overrideSubsystems(subs []string) {
	if len(subs) == 0 {
		return
	}
	c.Hotplug = true
	if len(subs) == 1 && subs[0] == "all" {
		c.Subsystems = []string{}
		return
	}
	c.Subsystems = subs
}

func getConfig(path string) *Config {
	if path == "" {
		path = configPath()
	}
	conf, err := loadConfig(path)
	if err != nil {
		fatal(err)
	}
	return conf
}
