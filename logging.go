package palette

import "time"

// NotifyLogEvent describes one subscriber collection attempt or hook fan-out
// for logging.
type NotifyLogEvent struct {
	Selector string
	Duration time.Duration
	Err      error
}

// NotifyLogger records notification events.
type NotifyLogger interface {
	LogNotify(NotifyLogEvent)
}

// NotifyLoggerFunc adapts a function to NotifyLogger.
type NotifyLoggerFunc func(NotifyLogEvent)

// LogNotify implements NotifyLogger.
func (f NotifyLoggerFunc) LogNotify(event NotifyLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopNotifyLogger struct{}

func (noopNotifyLogger) LogNotify(NotifyLogEvent) {}

// WithNotifyLogger attaches a notification logger to the store.
func WithNotifyLogger(logger NotifyLogger) Option {
	return func(cfg *storeConfig) {
		if logger == nil {
			cfg.logger = noopNotifyLogger{}
			return
		}
		cfg.logger = logger
	}
}
