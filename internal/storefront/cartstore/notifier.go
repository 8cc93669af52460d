package cartstore

import "go.uber.org/zap"

// Notifier surfaces non-fatal problems to the shopper, such as a toast.
type Notifier interface {
	Notify(message string)
}

// LogNotifier writes notifications to the log. It is the default when no UI
// is attached.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(message string) {
	n.logger.Warn("notification", zap.String("message", message))
}
