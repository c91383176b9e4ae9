package audit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type event struct {
	at     time.Time
	name   string
	fields map[string]any
}

// Logger emits audit events to the logging pipeline on a best-effort basis.
// TryLog never blocks: events go through a bounded buffer drained by one
// background goroutine, and when the buffer is full the event is dropped and
// counted. Emission failures are discarded.
type Logger struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	closed  bool
	ch      chan event
	done    chan struct{}
	dropped prometheus.Counter
}

func NewLogger(logger *zap.Logger, buffer int, dropped prometheus.Counter) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 256
	}
	l := &Logger{
		logger:  logger.Named("audit"),
		ch:      make(chan event, buffer),
		done:    make(chan struct{}),
		dropped: dropped,
	}
	go l.drain()
	return l
}

func (l *Logger) TryLog(name string, fields map[string]any) {
	// The read lock keeps Close from closing the channel mid-send.
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		l.drop()
		return
	}
	select {
	case l.ch <- event{at: time.Now().UTC(), name: name, fields: fields}:
	default:
		l.drop()
	}
}

// Close stops the drain goroutine after flushing whatever is buffered.
// TryLog calls racing or following Close drop their events instead of
// panicking on the closed channel.
func (l *Logger) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	close(l.ch)
	<-l.done
}

func (l *Logger) drop() {
	if l.dropped != nil {
		l.dropped.Inc()
	}
}

func (l *Logger) drain() {
	defer close(l.done)
	for evt := range l.ch {
		l.logger.Info(evt.name,
			zap.Time("at", evt.at),
			zap.Any("fields", evt.fields))
	}
}
