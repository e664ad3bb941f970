package rpc

import "encoding/json"

// JSON-RPC 2.0 framing. The resolver speaks plain HTTP POST with one frame
// per body; batches are not part of the wire contract with the prover.

const Version = "2.0"

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeServerError    = -32000
)

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func resultResponse(id json.RawMessage, result interface{}) Response {
	return Response{JSONRPC: Version, Result: result, ID: id}
}

func errorResponse(id json.RawMessage, code int, message string) Response {
	return Response{JSONRPC: Version, Error: &Error{Code: code, Message: message}, ID: id}
}
