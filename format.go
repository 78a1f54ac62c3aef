package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	barWidth       = 8
	percentPerStep = 18
	maxDescription = 30
	ellipsis       = "..."
	notAvailable   = "N/A"
	muteIndicator  = "  MUTE  "
)

var blocks = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Block elements are East Asian ambiguous; measure them as one cell
// regardless of locale.
var cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Formatter renders a device as "<description>: [<bar>]" for the status bar.
type Formatter struct {
	// Channel is the volume channel shown, falling back to mono and then
	// the device's channel map order.
	Channel string
}

func (f Formatter) Format(d *Device) string {
	if d == nil {
		return notAvailable
	}
	level := muteIndicator
	if !d.Mute {
		v, _ := d.channelVolume(f.Channel)
		level = volumeBar(v.Percent())
	}
	return fmt.Sprintf("%s: [%s]", shorten(d.Description), level)
}

// shorten cuts descriptions longer than 30 characters to 27 plus an
// ellipsis. Characters, not display columns.
func shorten(desc string) string {
	r := []rune(desc)
	if len(r) <= maxDescription {
		return desc
	}
	return string(r[:maxDescription-len(ellipsis)]) + ellipsis
}

// volumeBar fills ceil(percent/18) cells, clamped to the bar width.
func volumeBar(percent int) string {
	n := (percent + percentPerStep - 1) / percentPerStep
	n = max(0, min(n, len(blocks)))
	return cells.FillRight(strings.Join(blocks[:n], ""), barWidth)
}
