package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jochenvg/go-udev"
)

// udev actions that can add, remove or reconfigure an audio device
var hotplugActions = map[string]bool{
	"add":    true,
	"remove": true,
	"change": true,
}

// abstract the *udev.Device type so tests can create entries
type device interface {
	Syspath() string
	Action() string
	Properties() map[string]string
	PropertyValue(string) string
}

// hotplugLine describes a udev event as a monitor trigger, or returns false
// if the event should not trigger a re-read.
func hotplugLine(d device) (string, bool) {
	action := d.Action()
	if !hotplugActions[action] {
		return "", false
	}
	subsystem := strings.TrimSpace(d.PropertyValue("SUBSYSTEM"))
	return fmt.Sprintf("udev %s on %s %s", action, subsystem, d.Syspath()), true
}

// forwardHotplug turns udev device events into monitor triggers until devs
// closes or ctx is done.
func forwardHotplug(ctx context.Context, devs <-chan device, triggers chan<- string) {
	defer close(triggers)
	for d := range devs {
		line, ok := hotplugLine(d)
		if !ok {
			continue
		}
		select {
		case triggers <- line:
		case <-ctx.Done():
			return
		}
	}
}

// hotplugTriggers watches udev for audio hardware coming and going. An empty
// subsystem list watches every subsystem.
func hotplugTriggers(ctx context.Context, subsystems []string) (<-chan string, error) {
	u := udev.Udev{}
	m := u.NewMonitorFromNetlink("udev")
	for _, sub := range subsystems {
		if err := m.FilterAddMatchSubsystem(sub); err != nil {
			return nil, fmt.Errorf("udev filter %q: %w", sub, err)
		}
	}

	ch, err := m.DeviceChan(ctx.Done())
	if err != nil {
		return nil, fmt.Errorf("udev monitor: %w", err)
	}
	devs := make(chan device)
	go func() {
		defer close(devs)
		for d := range ch {
			select {
			case devs <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	triggers := make(chan string)
	go forwardHotplug(ctx, devs, triggers)
	return triggers, nil
}
