package toast

import "go.uber.org/zap"

// Notifier is the user-visible outcome surface. Every operation's
// success or failure ends up here as a short title and description.
type Notifier interface {
	Success(title string, description string)
	Error(title string, description string)
}

type zapNotifier struct {
	zaplog *zap.Logger
}

func NewZapNotifier(zaplog *zap.Logger) Notifier {
	return &zapNotifier{zaplog: zaplog}
}

func (n *zapNotifier) Success(title string, description string) {
	n.zaplog.Info(title, zap.String("description", description))
}

func (n *zapNotifier) Error(title string, description string) {
	n.zaplog.Warn(title, zap.String("description", description))
}
