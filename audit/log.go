package audit

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/joeycumines/go-longpoll"
	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"

	"github.com/esrlabs/sindri/jobs"
)

// DefaultBufferSize bounds the number of buffered, not-yet-flushed events.
// Beyond this, Record drops events rather than applying backpressure to the
// dispatch core.
const DefaultBufferSize = 256

// Logger is the structured logger type accepted by NewLog.
type Logger = logiface.Logger[*izerolog.Event]

// Option configures a Log.
type Option func(*Log)

// WithBufferSize overrides DefaultBufferSize.
func WithBufferSize(n int) Option {
	return func(l *Log) { l.bufferSize = n }
}

// WithBatch overrides the longpoll.ChannelConfig governing how many events
// are drained per flush.
func WithBatch(cfg longpoll.ChannelConfig) Option {
	return func(l *Log) { l.batch = cfg }
}

// Log is a hsm.AuditRecorder: Record is a non-blocking, best-effort,
// single-event send; Run bulk-drains the buffered events and flushes one
// summarized structured log record per batch, grounded on go-longpoll's
// min/max-size, partial-timeout bulk receive.
type Log struct {
	logger     *Logger
	bufferSize int
	batch      longpoll.ChannelConfig

	events chan jobs.AuditEvent
}

// NewLog constructs a Log. Run must be driven by a dedicated goroutine for
// events to ever be flushed.
func NewLog(logger *Logger, opts ...Option) *Log {
	l := &Log{
		logger:     logger,
		bufferSize: DefaultBufferSize,
		batch: longpoll.ChannelConfig{
			MaxSize:        64,
			MinSize:        1,
			PartialTimeout: 100 * time.Millisecond,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.events = make(chan jobs.AuditEvent, l.bufferSize)
	return l
}

// Record enqueues event for the next flush. If the buffer is full, event is
// dropped: the audit trail is supplemental, never a reason to stall the
// dispatch core.
func (l *Log) Record(event jobs.AuditEvent) {
	select {
	case l.events <- event:
	default:
	}
}

// Run drains and flushes batches until ctx is cancelled or the underlying
// channel is closed.
func (l *Log) Run(ctx context.Context) error {
	for {
		var batch []jobs.AuditEvent
		err := longpoll.Channel(ctx, &l.batch, l.events, func(event jobs.AuditEvent) error {
			batch = append(batch, event)
			return nil
		})

		if len(batch) > 0 {
			l.flush(batch)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (l *Log) flush(batch []jobs.AuditEvent) {
	counts := make(map[jobs.AuditKind]int, 4)
	var errCount int
	for _, event := range batch {
		counts[event.Kind]++
		if event.Err != nil {
			errCount++
		}
	}

	l.logger.Info().
		Int("batch_size", len(batch)).
		Int("requests_forwarded", counts[jobs.AuditRequestForwarded]).
		Int("responses_forwarded", counts[jobs.AuditResponseForwarded]).
		Int("keystore_handled", counts[jobs.AuditKeyStoreHandled]).
		Int("errors", errCount).
		Log("audit batch flushed")
}
