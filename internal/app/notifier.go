package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// logNotifier выводит уведомления об исходе оформления в лог. В серверном
// режиме пользовательского UI нет, поэтому toast-сообщения уходят в журнал.
type logNotifier struct {
	logger *log.Entry
}

func newLogNotifier(logger *log.Entry) domain.Notifier {
	return &logNotifier{logger: logger.WithField("component", "notifier")}
}

func (n *logNotifier) Success(message string) {
	n.logger.Info(message)
}

func (n *logNotifier) Failure(message string) {
	n.logger.Warn(message)
}

var _ domain.Notifier = (*logNotifier)(nil)
