package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// runner executes an external command and returns its standard output.
// Swapped out in tests.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			if msg := lastLine(string(ee.Stderr)); msg != "" {
				return out, fmt.Errorf("%s: %w: %s", name, err, msg)
			}
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// lastLine returns the last non-blank line of command output.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

// deviceKind selects sinks or sources in pactl queries
type deviceKind string

const (
	kindSource deviceKind = "source"
	kindSink   deviceKind = "sink"
)

// JSON shapes of `pactl --format=json list sinks|sources`. Only the fields
// the monitor uses are decoded.
type pactlVolume struct {
	Value        *int    `json:"value"`
	ValuePercent *string `json:"value_percent"`
	DB           *string `json:"db"`
}

type pactlDevice struct {
	State       string                 `json:"state"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	ChannelMap  []string               `json:"channel_map"`
	Mute        bool                   `json:"mute"`
	Volume      map[string]pactlVolume `json:"volume"`
}

func (p pactlDevice) device() Device {
	d := Device{
		State:       parseState(p.State),
		Name:        p.Name,
		Description: p.Description,
		ChannelMap:  p.ChannelMap,
		Mute:        p.Mute,
		Volume:      make(map[string]Volume, len(p.Volume)),
	}
	for ch, v := range p.Volume {
		vol := Volume{ValuePercent: "0%", DB: "0 dB"}
		if v.Value != nil {
			vol.Value = *v.Value
		}
		if v.ValuePercent != nil {
			vol.ValuePercent = *v.ValuePercent
		}
		if v.DB != nil {
			vol.DB = *v.DB
		}
		d.Volume[ch] = vol
	}
	return d
}

// pactl reads device snapshots from the audio server. Every call queries
// live state; nothing is cached.
type pactl struct {
	bin  string
	run  runner
	elog logger
}

func newPactl(bin string, run runner, elog logger) *pactl {
	if run == nil {
		run = execRunner
	}
	return &pactl{bin: bin, run: run, elog: elog}
}

func (p *pactl) list(ctx context.Context, kind deviceKind) ([]pactlDevice, error) {
	out, err := p.run(ctx, p.bin, "--format=json", "list", string(kind)+"s")
	if err != nil {
		return nil, err
	}
	var devs []pactlDevice
	if err := json.Unmarshal(out, &devs); err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", kind, err)
	}
	return devs, nil
}

// ReadDevices returns every source followed by every sink. A failed or
// malformed query is logged and yields no devices at all.
func (p *pactl) ReadDevices(ctx context.Context) []Device {
	sources, err := p.list(ctx, kindSource)
	if err != nil {
		p.elog.Printf("reading audio devices: %v", err)
		return nil
	}
	sinks, err := p.list(ctx, kindSink)
	if err != nil {
		p.elog.Printf("reading audio devices: %v", err)
		return nil
	}
	devices := make([]Device, 0, len(sources)+len(sinks))
	for _, d := range append(sources, sinks...) {
		devices = append(devices, d.device())
	}
	return devices
}

// ReadDefault returns the name of the server's default device of kind, or
// "" if it can't be read.
func (p *pactl) ReadDefault(ctx context.Context, kind deviceKind) string {
	out, err := p.run(ctx, p.bin, "get-default-"+string(kind))
	if err != nil {
		p.elog.Printf("reading default %s: %v", kind, err)
		return ""
	}
	return strings.TrimSpace(string(out))
}

// ReadState builds a snapshot of the default sink and source. Both are
// resolved against the same device enumeration.
func (p *pactl) ReadState(ctx context.Context) AudioState {
	source := p.ReadDefault(ctx, kindSource)
	sink := p.ReadDefault(ctx, kindSink)
	return resolveState(p.ReadDevices(ctx), sink, source)
}

// subscription is a running `pactl subscribe` process. Lines delivers its
// output one line at a time and is closed when the process output ends.
type subscription struct {
	cmd      *exec.Cmd
	lines    chan string
	done     chan struct{}
	readDone chan struct{}
	once     sync.Once
	err      error
}

func (p *pactl) Subscribe(ctx context.Context) (*subscription, error) {
	cmd := exec.CommandContext(ctx, p.bin, "subscribe")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s subscribe: %w", p.bin, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s subscribe: %w", p.bin, err)
	}
	s := &subscription{
		cmd:      cmd,
		lines:    make(chan string),
		done:     make(chan struct{}),
		readDone: make(chan struct{}),
	}
	go s.read(stdout)
	return s, nil
}

func (s *subscription) read(r io.Reader) {
	defer close(s.readDone)
	defer close(s.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case s.lines <- scanner.Text():
		case <-s.done:
			return
		}
	}
}

func (s *subscription) Lines() <-chan string {
	return s.lines
}

// Close terminates the subscribe process and waits for it to exit. Safe to
// call more than once.
func (s *subscription) Close() error {
	s.once.Do(func() {
		close(s.done)
		// fails with os.ErrProcessDone if pactl already exited
		_ = s.cmd.Process.Signal(syscall.SIGTERM)
		// the pipe must be drained before Wait closes it
		<-s.readDone
		err := s.cmd.Wait()
		var ee *exec.ExitError
		if errors.As(err, &ee) || errors.Is(err, context.Canceled) {
			// terminated by us or by ctx
			err = nil
		}
		s.err = err
	})
	return s.err
}
