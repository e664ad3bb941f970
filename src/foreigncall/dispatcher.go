package foreigncall

import (
	"foreign-call-resolver/src/logger"
)

// Sentinel results baked into the wire contract with the proving framework.
// Both are returned as successful RPC results, not as error frames.
const (
	ResultUnknownFunction = "oops"
	ResultBadQuery        = "Bad query"
)

// Handler resolves a single foreign call and returns the scalar result as a
// decimal string. A returned error fails the RPC invocation but must never
// bring down the server.
type Handler func(req RequestData) (string, error)

type Dispatcher struct {
	handlers map[string]Handler
	logger   *logger.Logger
}

// NewDispatcher builds the function-name to handler table. Adding a future
// handler is a single map insert.
func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: map[string]Handler{
			"getSqrt": HandleGetSqrt,
			"getSum":  HandleGetSum,
			"getDiff": HandleGetDiff,
		},
		logger: log,
	}
}

// Resolve dispatches the first request of the batch on its function name.
// Only requests[0] is consumed; this is an invariant of the current protocol
// version. Unknown functions yield the "oops" sentinel.
func (d *Dispatcher) Resolve(requests []RequestData) (string, error) {
	if len(requests) == 0 {
		return "", ErrEmptyBatch
	}

	request := requests[0]
	d.logger.Debugf("Resolving foreign call %q (session %d)", request.Function, request.SessionID)

	handler, known := d.handlers[request.Function]
	if !known {
		d.logger.Warnf("Unknown foreign call function: %q", request.Function)
		return ResultUnknownFunction, nil
	}

	result, err := handler(request)
	if err != nil {
		d.logger.Errorf(err, "Foreign call %q failed (session %d)", request.Function, request.SessionID)
		return "", err
	}

	d.logger.Infof("Resolved %q -> %s (session %d)", request.Function, result, request.SessionID)
	return result, nil
}
