package logger

import (
	"fmt"

	"foreign-call-resolver/src/utils/timeutil"

	"github.com/rs/zerolog"
)

// AddSink attaches a secondary destination that receives every message
// emitted through the Logger, alongside the zerolog output.
func AddSink(l *Logger, sinkFunction func(string, zerolog.Level, timeutil.TimeUTC)) {
	l.sink = sinkFunction
}

func (l *Logger) activateSinkFormatted(level zerolog.Level, format string, v ...interface{}) {
	l.activateSink(fmt.Sprintf(format, v...), level)
}

func (l *Logger) activateSink(msg string, level zerolog.Level) {
	if l.sink != nil {
		l.sink(msg, level, timeutil.NowUTC())
	}
}
