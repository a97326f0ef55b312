// Package jsonrpc defines the JSON-RPC-shaped request and response envelopes
// used by the analysis API. The surface mirrors the id/method of each request
// rather than implementing the full JSON-RPC 2.0 machinery; requests without
// an id are assigned a generated UUID so every response stays correlatable.
package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoParams indicates a request whose params array is empty or absent.
var ErrNoParams = errors.New("request carries no params")

// Request is the inbound envelope: an id, a method name, and positional
// params. The id may be a string or a number; it is preserved verbatim.
type Request struct {
	ID     json.RawMessage   `json:"id,omitempty"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// EchoID returns the request id for mirroring into the response, generating a
// UUID when the request carried none.
func (r Request) EchoID() json.RawMessage {
	if len(r.ID) > 0 && string(r.ID) != "null" {
		return r.ID
	}

	generated, _ := json.Marshal(uuid.NewString())
	return generated
}

// FirstParam unmarshals the first positional parameter into v.
func (r Request) FirstParam(v any) error {
	if len(r.Params) == 0 {
		return ErrNoParams
	}
	if err := json.Unmarshal(r.Params[0], v); err != nil {
		return fmt.Errorf("invalid params[0]: %w", err)
	}
	return nil
}

// Response is the outbound envelope mirroring the request's id and method.
type Response struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Result any             `json:"result,omitempty"`
	Error  *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the structured error object attached to failed envelopes.
type ResponseError struct {
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewResponse builds a success envelope for the given request.
func NewResponse(req Request, result any) Response {
	return Response{
		ID:     req.EchoID(),
		Method: req.Method,
		Result: result,
	}
}

// NewErrorResponse builds a failure envelope for the given request.
func NewErrorResponse(req Request, message, details string) Response {
	return Response{
		ID:     req.EchoID(),
		Method: req.Method,
		Error:  &ResponseError{Message: message, Details: details},
	}
}
