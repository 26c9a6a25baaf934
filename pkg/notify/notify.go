package notify

import (
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
)

// Notifier is the fire-and-forget notification boundary. Callers never wait
// on delivery and never see a delivery error.
type Notifier interface {
	Success(event string, args ...any)
	Failure(event string, args ...any)
}

type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Success(event string, args ...any) {
	n.logger.Info("notify: "+event, args...)
}

func (n *LogNotifier) Failure(event string, args ...any) {
	n.logger.Error("notify: "+event, args...)
}

// Noop discards every notification.
type Noop struct{}

func (Noop) Success(string, ...any) {}
func (Noop) Failure(string, ...any) {}
