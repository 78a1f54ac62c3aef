package main

import (
	"context"
	"strconv"
)

type Notification struct {
	Urgency string
	Timeout int // milliseconds
	Title   string
	Body    string
}

type notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// notifySend posts desktop notifications through notify-send(1).
type notifySend struct {
	bin string
	run runner
}

func (s notifySend) Notify(ctx context.Context, n Notification) error {
	_, err := s.run(ctx, s.bin,
		"-u", n.Urgency,
		"-t", strconv.Itoa(n.Timeout),
		n.Title, n.Body)
	return err
}
