package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
)

// Flags
var quiet bool
var listDevs bool
var watchEvents bool
var once bool
var overrideSubs []string
var configFile string

const usageText = `Usage: %s [options] [subsystem ...]

Watch the audio server for changes to the default sink and source. Sends a
desktop notification when either default device changes and keeps the eww
sink-settings/source-settings variables up to date. Primarily run in the
background of your session. Configuration file defaults to standard XDG
location (usually ~/.config/audio-notify/config.toml).

Options:

  subsystem - One or more udev subsystems whose events trigger a device
              re-read (overrides configured list). Use the term 'all' to
              not filter at all.

`

func flagParse() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usageText, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.StringVarP(&configFile, "config", "c", "", "Use `configfile` for your config")
	flag.BoolVarP(&listDevs, "list", "l", false, "List audio devices and exit")
	flag.BoolVarP(&watchEvents, "watch", "w", false,
		"Watch and write audio server events to STDOUT")
	flag.BoolVarP(&once, "once", "o", false,
		"Print the formatted sink and source once and exit")
	flag.BoolVarP(&quiet, "quiet", "q", false, "Quiet all normal output")
	flag.Parse()
	log.SetFlags(0)
	log.SetOutput(os.Stdout)
	if quiet {
		log.SetOutput(io.Discard)
	}
	overrideSubs = flag.Args()
}
