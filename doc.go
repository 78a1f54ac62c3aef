/*
The package audio-notify is a tool to watch the PulseAudio (or PipeWire-pulse)
server for changes to the default sink and source. Designed to run as part of
a user session on a Linux system with an eww status bar.

Whenever pactl reports a change it re-reads the default devices. If the
default sink or source is now a different device you get a desktop
notification (via notify-send), and the eww variables sink-settings and
source-settings are updated with a line like..

    ♫ Speakers: [▁▂▃     ]
    🎙 Microphone: [  MUTE  ]

The bar has 8 cells, one per 18% of volume. Descriptions longer than 30
characters are shortened.

To see what the audio server reports run it in watch mode and change
something in your mixer.

    audio-notify -w

To list the known devices and which ones are the defaults..

    audio-notify -l

With Hotplug enabled, plugging audio hardware in or out is also picked up
from udev (the "sound" subsystem by default), in case the audio server's own
event gets lost. Each udev event then counts as a change event. It is off by
default so only pactl change events cause a re-read.

It searches for a TOML formatted config file passed on the command line or in..

	$XDG_CONFIG_HOME/audio-notify/config.toml

See the example-config.toml for the config file structure. Without a config
file the defaults match the example.

NOTE: None of the external commands have a timeout. A hung pactl blocks the
monitor until it returns.
*/
package main
