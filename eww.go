package main

import "context"

// Variable names and prefixes the eww widgets read.
const (
	sinkVariable   = "sink-settings"
	sourceVariable = "source-settings"
	sinkPrefix     = "♫ "
	sourcePrefix   = "🎙 "
)

type publisher interface {
	Publish(ctx context.Context, sink, source string) error
}

// eww pushes the formatted device strings into a running eww daemon.
type eww struct {
	bin    string
	config string // eww --config directory, empty for eww's default
	run    runner
}

func (e eww) args(sink, source string) []string {
	var args []string
	if e.config != "" {
		args = append(args, "--config", e.config)
	}
	return append(args, "update",
		sinkVariable+"="+sinkPrefix+sink,
		sourceVariable+"="+sourcePrefix+source)
}

func (e eww) Publish(ctx context.Context, sink, source string) error {
	_, err := e.run(ctx, e.bin, e.args(sink, source)...)
	return err
}
