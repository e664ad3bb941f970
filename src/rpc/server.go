package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"foreign-call-resolver/src/foreigncall"
	"foreign-call-resolver/src/logger"
	"foreign-call-resolver/src/queues"

	"github.com/gin-gonic/gin"
)

// Method executes one registered RPC method. Errors become JSON-RPC error
// frames; the transport stays up either way.
type Method func(params json.RawMessage) (interface{}, error)

type Server struct {
	methods    map[string]Method
	dispatcher *foreigncall.Dispatcher
	audit      queues.Publisher
	logger     *logger.Logger
	engine     *gin.Engine
}

// NewServer registers the two resolver methods on a gin engine. The audit
// publisher may be nil, in which case resolved calls are only logged.
func NewServer(dispatcher *foreigncall.Dispatcher, log *logger.Logger, audit queues.Publisher) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		dispatcher: dispatcher,
		audit:      audit,
		logger:     log,
	}
	s.methods = map[string]Method{
		"say_hello":            s.sayHello,
		"resolve_foreign_call": s.resolveForeignCall,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST("/", s.handleInvocation)
	s.engine = engine

	return s
}

// Handler exposes the underlying engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleInvocation(c *gin.Context) {
	var request Request
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusOK, errorResponse(nil, CodeParseError, "Parse error"))
		return
	}

	method, known := s.methods[request.Method]
	if !known {
		s.logger.Warnf("Unknown RPC method: %q", request.Method)
		c.JSON(http.StatusOK, errorResponse(request.ID, CodeMethodNotFound, "Method not found"))
		return
	}

	started := time.Now()
	result, err := s.call(method, request.Params)
	s.logger.Debugf("Method %q handled in %s", request.Method, time.Since(started))

	if err != nil {
		c.JSON(http.StatusOK, errorResponse(request.ID, CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resultResponse(request.ID, result))
}

// call runs a method behind a recover barrier so that one poisoned request
// cannot terminate the server.
func (s *Server) call(method Method, params json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf(nil, "Recovered from panic in RPC method: %v", r)
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	return method(params)
}

func (s *Server) sayHello(_ json.RawMessage) (interface{}, error) {
	return "lo", nil
}

// resolveForeignCall expects params to be a single string argument whose
// content is itself a JSON array of request objects. The double encoding is
// part of the existing wire contract and is kept as-is. Anything else is
// answered with the "Bad query" sentinel result.
func (s *Server) resolveForeignCall(params json.RawMessage) (interface{}, error) {
	payload, ok := paramString(params)
	if !ok {
		s.logger.Warn("No string parameter provided to resolve_foreign_call")
		return foreigncall.ResultBadQuery, nil
	}

	requests, err := foreigncall.DecodeRequests(payload)
	if err != nil {
		s.logger.Errorf(err, "Failed to decode foreign call payload")
		return foreigncall.ResultBadQuery, nil
	}

	result, err := s.dispatcher.Resolve(requests)
	s.publishAudit(requests[0], result, err)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Server) publishAudit(request foreigncall.RequestData, result string, resolveErr error) {
	if s.audit == nil {
		return
	}

	message := queues.NewResolvedCallMessage(request.SessionID, request.Function, result, resolveErr)
	if err := s.audit.Publish(message); err != nil {
		s.logger.Errorf(err, "Failed to publish audit event for session %d", request.SessionID)
	}
}

// paramString extracts the single positional string argument. Both the
// positional form ["..."] and a bare string are accepted.
func paramString(params json.RawMessage) (string, bool) {
	if len(params) == 0 {
		return "", false
	}

	var positional []json.RawMessage
	if err := json.Unmarshal(params, &positional); err == nil {
		if len(positional) != 1 {
			return "", false
		}
		params = positional[0]
	}

	var payload string
	if err := json.Unmarshal(params, &payload); err != nil {
		return "", false
	}
	return payload, true
}
