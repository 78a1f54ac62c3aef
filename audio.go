package main

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// pactl reports raw channel volume where 65536 is 100%
const volumeNorm = 65536

type DeviceState string

const (
	StateRunning   DeviceState = "running"
	StateIdle      DeviceState = "idle"
	StateSuspended DeviceState = "suspended"
	StateUnknown   DeviceState = "unknown"
)

func parseState(s string) DeviceState {
	switch st := DeviceState(strings.ToLower(strings.TrimSpace(s))); st {
	case StateRunning, StateIdle, StateSuspended:
		return st
	}
	return StateUnknown
}

// Volume is one channel's level as read from the audio server.
type Volume struct {
	Value        int
	ValuePercent string
	DB           string
}

// Percent returns the channel level in percent. The server's own percent
// string wins; the raw value is used when that string can't be parsed.
func (v Volume) Percent() int {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.ValuePercent), "%"))
	if p, err := strconv.Atoi(s); err == nil {
		return p
	}
	return int(math.Round(float64(v.Value) * 100 / volumeNorm))
}

// Device is a sink or source known to the audio server at snapshot time.
// Name is its only identity.
type Device struct {
	State       DeviceState
	Name        string
	Description string
	ChannelMap  []string
	Mute        bool
	Volume      map[string]Volume
}

func (d *Device) Equal(o *Device) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.State == o.State &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.Mute == o.Mute &&
		slices.Equal(d.ChannelMap, o.ChannelMap) &&
		maps.Equal(d.Volume, o.Volume)
}

// channelVolume picks the channel shown for the device: the preferred
// channel, then mono, then the channel map order, then the first key.
func (d *Device) channelVolume(preferred string) (Volume, bool) {
	if len(d.Volume) == 0 {
		return Volume{}, false
	}
	for _, ch := range []string{preferred, "mono"} {
		if v, ok := d.Volume[ch]; ok && ch != "" {
			return v, true
		}
	}
	for _, ch := range d.ChannelMap {
		if v, ok := d.Volume[ch]; ok {
			return v, true
		}
	}
	keys := slices.Sorted(maps.Keys(d.Volume))
	return d.Volume[keys[0]], true
}

func (d *Device) name() string {
	if d == nil {
		return ""
	}
	return d.Name
}

func (d *Device) description() string {
	if d == nil {
		return "N/A"
	}
	return d.Description
}

// AudioState holds the default sink and source, resolved from one device
// enumeration. A nil slot means the default name matched no device.
type AudioState struct {
	Sink   *Device
	Source *Device
}

func (a AudioState) Equal(b AudioState) bool {
	return a.Sink.Equal(b.Sink) && a.Source.Equal(b.Source)
}

// resolveState looks up the default names in devices. First exact match wins.
func resolveState(devices []Device, sinkName, sourceName string) AudioState {
	return AudioState{
		Sink:   findDevice(devices, sinkName),
		Source: findDevice(devices, sourceName),
	}
}

func findDevice(devices []Device, name string) *Device {
	if name == "" {
		return nil
	}
	for i := range devices {
		if devices[i].Name == name {
			d := devices[i]
			return &d
		}
	}
	return nil
}
