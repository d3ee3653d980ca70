package notifier

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ChannelNotifier decouples the booking engine from notification delivery.
// Notify enqueues the message and returns; a single goroutine drains the
// channel into the sink. A full buffer drops the message rather than block
// the caller.
type ChannelNotifier struct {
	messages chan string
	log      *logrus.Logger
}

func NewChannelNotifier(buffer int, log *logrus.Logger) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 64
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChannelNotifier{
		messages: make(chan string, buffer),
		log:      log,
	}
}

func (n *ChannelNotifier) Notify(message string) {
	select {
	case n.messages <- message:
	default:
		n.log.WithField("message", message).Warn("notification buffer full, dropping")
	}
}

// Run drains the queue until ctx is cancelled. The log sink stands in for
// the real delivery channel; swap it out behind this method, not in the
// engine.
func (n *ChannelNotifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-n.messages:
			n.log.WithField("notification", msg).Info("user notification")
		}
	}
}
