package interceptor

import (
	"github.com/arthur-debert/methodlog/pkg/logging"
	"github.com/rs/zerolog"
)

// Sink receives the formatted log records produced by the interceptor.
// Invocation and completion records go to Info, exception and
// logging-failure records to Error. Implementations must be safe for
// concurrent use.
type Sink interface {
	Info(msg string)
	Error(msg string)
}

type zerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink returns a Sink that writes records through the global
// zerolog logger under the "interceptor" component
func NewZerologSink() Sink {
	return &zerologSink{logger: logging.GetLogger("interceptor")}
}

func (s *zerologSink) Info(msg string) {
	s.logger.Info().Msg(msg)
}

func (s *zerologSink) Error(msg string) {
	s.logger.Error().Msg(msg)
}
