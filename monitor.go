package main

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// pactl subscribe lines look like: Event 'change' on sink #57
const changeMarker = "change"

type stateReader interface {
	ReadState(ctx context.Context) AudioState
}

// monitor keeps the status bar and the user informed about the default
// sink and source. It reacts to one event at a time.
type monitor struct {
	reader    stateReader
	format    Formatter
	publisher publisher
	notifier  notifier
	urgency   string
	timeout   int
	elog      logger

	prev AudioState
}

// run seeds the status bar with the current state and then reacts to events
// until ctx is done or the event stream closes. Lines on events only count
// when they carry the change marker; every line on triggers counts.
// A nil triggers channel is never ready.
func (m *monitor) run(ctx context.Context, events, triggers <-chan string) {
	m.prev = m.reader.ReadState(ctx)
	if err := m.publish(ctx, m.prev); err != nil {
		m.elog.Printf("updating status bar: %v", err)
	}
	for {
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-events:
			if !ok {
				// pactl is killed along with ctx on interrupt
				if ctx.Err() == nil {
					m.elog.Printf("audio event stream closed")
				}
				return
			}
			if !strings.Contains(l, changeMarker) {
				continue
			}
			line = l
		case l, ok := <-triggers:
			if !ok {
				triggers = nil
				continue
			}
			line = l
		}
		if ctx.Err() != nil {
			return
		}
		if err := m.react(ctx); err != nil {
			m.elog.Printf("updating audio devices after %q: %v", line, err)
		}
	}
}

// react re-reads the snapshot and applies any difference. Notification
// failures are reported but don't stop the status bar update.
func (m *monitor) react(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	cur := m.reader.ReadState(ctx)
	if cur.Equal(m.prev) {
		return nil
	}
	if cur.Source.name() != m.prev.Source.name() {
		m.notify(ctx, "Audio source device changed", cur.Source.description())
	}
	if cur.Sink.name() != m.prev.Sink.name() {
		m.notify(ctx, "Audio sink device changed", "New Sink: "+cur.Sink.description())
	}
	m.prev = cur
	log.Printf("%s | %s", cur.Sink.description(), cur.Source.description())
	return m.publish(ctx, cur)
}

func (m *monitor) notify(ctx context.Context, title, body string) {
	err := m.notifier.Notify(ctx, Notification{
		Urgency: m.urgency,
		Timeout: m.timeout,
		Title:   title,
		Body:    body,
	})
	if err != nil {
		m.elog.Printf("sending notification %q: %v", title, err)
	}
}

func (m *monitor) publish(ctx context.Context, s AudioState) error {
	return m.publisher.Publish(ctx, m.format.Format(s.Sink), m.format.Format(s.Source))
}
