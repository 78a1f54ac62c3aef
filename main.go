package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
)

type logger interface {
	Printf(format string, v ...any)
}

// errors are never quieted
var elog = log.New(os.Stderr, "", 0)

func fatal(err error) {
	elog.Println(err)
	os.Exit(1)
}

func main() {
	flagParse()
	conf := getConfig(configFile)
	conf.overrideSubsystems(overrideSubs)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	p := newPactl(conf.Pactl, execRunner, elog)
	var err error
	switch {
	case listDevs:
		err = displayDeviceList(ctx, p, os.Stdout)
	case watchEvents:
		err = watchLoop(ctx, p)
	case once:
		f := Formatter{Channel: conf.Channel}
		s := p.ReadState(ctx)
		fmt.Println(sinkPrefix + f.Format(s.Sink))
		fmt.Println(sourcePrefix + f.Format(s.Source))
	default:
		err = monitorLoop(ctx, conf, p)
	}
	if err != nil {
		stop()
		fatal(err)
	}
}

// main loop
// follows the audio server's events and keeps the bar and user informed
func monitorLoop(ctx context.Context, conf *Config, p *pactl) error {
	sub, err := p.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	var triggers <-chan string
	if conf.Hotplug {
		triggers, err = hotplugTriggers(ctx, conf.Subsystems)
		if err != nil {
			// pactl events alone are enough to keep going
			elog.Printf("hotplug disabled: %v", err)
		}
	}

	m := &monitor{
		reader: p,
		format: Formatter{Channel: conf.Channel},
		publisher: eww{
			bin:    conf.Eww,
			config: os.ExpandEnv(conf.EwwConfig),
			run:    execRunner,
		},
		notifier: notifySend{bin: conf.NotifySend, run: execRunner},
		urgency:  conf.Urgency,
		timeout:  conf.TimeoutMS,
		elog:     elog,
	}
	log.Println("Monitoring for audio changes...")
	m.run(ctx, sub.Lines(), triggers)
	log.Println("Monitoring stopped.")
	return nil
}

// print raw audio server events, for working out what triggers a change
func watchLoop(ctx context.Context, p *pactl) error {
	sub, err := p.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-sub.Lines():
			if !ok {
				return nil
			}
			fmt.Println(line)
		}
	}
}

// display the list of sources and sinks
func displayDeviceList(ctx context.Context, p *pactl, w io.Writer) error {
	defaults := map[string]deviceKind{
		p.ReadDefault(ctx, kindSource): kindSource,
		p.ReadDefault(ctx, kindSink):   kindSink,
	}
	for _, kind := range []deviceKind{kindSource, kindSink} {
		devs, err := p.list(ctx, kind)
		if err != nil {
			return err
		}
		for _, pd := range devs {
			d := pd.device()
			_, isDefault := defaults[d.Name]
			fmt.Fprintln(w, devString(kind, d, isDefault && d.Name != ""))
		}
	}
	return nil
}

// returns the device's header and properties
func devString(kind deviceKind, d Device, isDefault bool) string {
	name := d.Description
	if name == "" {
		name = d.Name
	}
	name = fmt.Sprintf("%s (%s", name, kind)
	if isDefault {
		name += ", default"
	}
	name += ")"

	properties := map[string]string{
		"name":  d.Name,
		"state": string(d.State),
		"mute":  fmt.Sprint(d.Mute),
	}
	if len(d.ChannelMap) > 0 {
		properties["channels"] = strings.Join(d.ChannelMap, ",")
	}
	for ch, v := range d.Volume {
		properties["volume."+ch] = fmt.Sprintf("%s / %s", v.ValuePercent, v.DB)
	}
	orderedKeys := make([]string, 0, len(properties))
	for k := range properties {
		orderedKeys = append(orderedKeys, k)
	}
	sort.Strings(orderedKeys)

	result := make([]string, 0, len(properties)+1)
	result = append(result,
		fmt.Sprintf("%s\n%s\n", name, strings.Repeat("-", cells.StringWidth(name))))
	for _, k := range orderedKeys {
		result = append(result, fmt.Sprintf("- %s = %q\n", k, properties[k]))
	}
	return strings.Join(result, "")
}
