package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func testDevice(desc string, percent string, mute bool) *Device {
	return &Device{
		State:       StateRunning,
		Name:        strings.ToLower(desc),
		Description: desc,
		ChannelMap:  []string{"front-left", "front-right"},
		Mute:        mute,
		Volume: map[string]Volume{
			"front-left":  {ValuePercent: percent},
			"front-right": {ValuePercent: percent},
		},
	}
}

func filled(bar string) int {
	return utf8.RuneCountInString(strings.TrimRight(bar, " "))
}

func TestVolumeBarFill(t *testing.T) {
	for p := 0; p <= 100; p++ {
		bar := volumeBar(p)
		if w := cells.StringWidth(bar); w != barWidth {
			t.Fatalf("percent %d: bar %q is %d wide, want %d", p, bar, w, barWidth)
		}
		want := 0
		if p > 0 {
			want = min(max((p+17)/18, 1), 8)
		}
		if got := filled(bar); got != want {
			t.Errorf("percent %d: %d filled cells, want %d", p, got, want)
		}
	}
}

func TestVolumeBarClamp(t *testing.T) {
	for _, p := range []int{144, 150, 200, 1000} {
		bar := volumeBar(p)
		if bar != strings.Join(blocks, "") {
			t.Errorf("percent %d: got %q, want full bar", p, bar)
		}
	}
	if bar := volumeBar(-10); bar != strings.Repeat(" ", barWidth) {
		t.Errorf("negative percent: got %q, want empty bar", bar)
	}
}

func TestFormatMute(t *testing.T) {
	f := Formatter{Channel: "front-left"}
	for _, p := range []string{"0%", "54%", "100%", "150%"} {
		got := f.Format(testDevice("Speakers", p, true))
		if got != "Speakers: [  MUTE  ]" {
			t.Errorf("muted at %s, got: %q", p, got)
		}
	}
}

func TestFormatAbsent(t *testing.T) {
	if got := (Formatter{}).Format(nil); got != "N/A" {
		t.Error("absent device, got:", got, "want: N/A")
	}
}

func TestFormatLevel(t *testing.T) {
	f := Formatter{Channel: "front-left"}
	got := f.Format(testDevice("Speakers", "54%", false))
	if got != "Speakers: [▁▂▃     ]" {
		t.Errorf("got: %q", got)
	}
}

func TestFormatDescription(t *testing.T) {
	f := Formatter{}
	tests := []struct {
		desc, want string
	}{
		{strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{strings.Repeat("a", 31), strings.Repeat("a", 27) + "..."},
		{"Built-in Audio Analog Stereo Output", "Built-in Audio Analog Stere..."},
		{"", ""},
		// wide characters count once each
		{"内蔵オーディオ アナログステレオ", "内蔵オーディオ アナログステレオ"},
		{strings.Repeat("音", 31), strings.Repeat("音", 27) + "..."},
	}
	for _, tc := range tests {
		got := f.Format(testDevice(tc.desc, "0%", false))
		want := tc.want + ": [        ]"
		if got != want {
			t.Errorf("description %q: got %q, want %q", tc.desc, got, want)
		}
	}
}

func TestChannelSelection(t *testing.T) {
	d := &Device{
		ChannelMap: []string{"rear-left", "front-left"},
		Volume: map[string]Volume{
			"front-left": {ValuePercent: "10%"},
			"rear-left":  {ValuePercent: "90%"},
		},
	}
	tests := []struct {
		channel string
		want    int
	}{
		{"front-left", 10},
		{"rear-left", 90},
		// not present, so channel map order
		{"lfe", 90},
		{"", 90},
	}
	for _, tc := range tests {
		v, ok := d.channelVolume(tc.channel)
		if !ok || v.Percent() != tc.want {
			t.Errorf("channel %q: got %d, want %d", tc.channel, v.Percent(), tc.want)
		}
	}

	mono := &Device{Volume: map[string]Volume{
		"mono": {ValuePercent: "36%"},
		"aux0": {ValuePercent: "99%"},
	}}
	if v, _ := mono.channelVolume("front-left"); v.Percent() != 36 {
		t.Error("mono fallback, got:", v.Percent(), "want: 36")
	}

	unmapped := &Device{Volume: map[string]Volume{
		"aux1": {ValuePercent: "80%"},
		"aux0": {ValuePercent: "20%"},
	}}
	if v, _ := unmapped.channelVolume("front-left"); v.Percent() != 20 {
		t.Error("sorted key fallback, got:", v.Percent(), "want: 20")
	}

	if _, ok := (&Device{}).channelVolume("front-left"); ok {
		t.Error("device without volumes should have no channel")
	}
	got := (Formatter{}).Format(&Device{Description: "Dummy"})
	if got != "Dummy: [        ]" {
		t.Errorf("device without volumes, got: %q", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		v    Volume
		want int
	}{
		{Volume{Value: 0, ValuePercent: "54%"}, 54},
		{Volume{Value: 65536, ValuePercent: " 100% "}, 100},
		{Volume{Value: 32768, ValuePercent: "bogus"}, 50},
		{Volume{Value: 98304}, 150},
	}
	for _, tc := range tests {
		if got := tc.v.Percent(); got != tc.want {
			t.Errorf("%+v: got %d, want %d", tc.v, got, tc.want)
		}
	}
}
