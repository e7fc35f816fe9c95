package client

import (
	"encoding/json"
	"fmt"
)

// APIError is a failure reported by the AMS API, either as a non-200 status
// or as an RPC exception envelope embedded in a 200 response.
type APIError struct {
	Endpoint string
	Status   int
	Type     string
	Message  string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("AMS API error (%s) on %s: %s", e.Type, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("AMS API returned status %d on %s", e.Status, e.Endpoint)
}

type rpcEnvelope struct {
	IsException bool   `json:"__is_rpc_exception__"`
	Type        string `json:"type"`
	Value       struct {
		DetailMessage string `json:"detailMessage"`
	} `json:"value"`
}

// rpcException decodes the platform's exception envelope. Returns nil when
// the body is not an exception.
func rpcException(body []byte, endpoint string) *APIError {
	var env rpcEnvelope
	if err := json.Unmarshal(body, &env); err != nil || !env.IsException {
		return nil
	}
	errType := env.Type
	if errType == "" {
		errType = "UnknownError"
	}
	msg := env.Value.DetailMessage
	if msg == "" {
		msg = "no error message provided"
	}
	return &APIError{Endpoint: endpoint, Type: errType, Message: msg}
}
