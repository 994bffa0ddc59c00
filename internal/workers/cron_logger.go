package workers

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/lorencia/portal/internal/logger"
)

// cronLogger adapts *logger.Logger to the cron.Logger interface so recover
// and skip events from the cron chain land in the structured log.
type cronLogger struct {
	logger *logger.Logger
}

func newCronLogger(l *logger.Logger) cron.Logger {
	return &cronLogger{logger: l}
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Info().Fields(fieldMap(keysAndValues)).Msg(msg)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Err(err).Fields(fieldMap(keysAndValues)).Msg(msg)
}

func fieldMap(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
