package foreigncall

import (
	"encoding/json"
	"errors"
)

// RequestData is one foreign call issued by the proving framework. The
// caller names the operands "inputs" and pads them to fixed-width hex;
// root_path and package_name are opaque and only carried for future
// handlers.
type RequestData struct {
	SessionID   uint64   `json:"session_id"`
	Function    string   `json:"function"`
	Inputs      []string `json:"inputs"`
	RootPath    string   `json:"root_path"`
	PackageName string   `json:"package_name"`
}

var (
	ErrEmptyBatch      = errors.New("foreign call batch is empty")
	ErrMissingFunction = errors.New("foreign call request has no function name")
	ErrMissingInputs   = errors.New("foreign call request has no inputs")
)

// DecodeRequests parses the inner JSON document carried by the RPC params:
// an array of request objects. Unknown JSON fields are ignored for forward
// compatibility; session_id, root_path and package_name default to zero
// values when absent.
func DecodeRequests(payload string) ([]RequestData, error) {
	var requests []requestDataJson
	if err := json.Unmarshal([]byte(payload), &requests); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, ErrEmptyBatch
	}

	decoded := make([]RequestData, len(requests))
	for i, r := range requests {
		if r.Function == nil {
			return nil, ErrMissingFunction
		}
		if r.Inputs == nil {
			return nil, ErrMissingInputs
		}
		decoded[i] = r.convertToDomain()
	}

	return decoded, nil
}

// requestDataJson mirrors RequestData with pointers on the required fields,
// so that "absent" and "zero value" can be told apart during decoding.
type requestDataJson struct {
	SessionID   uint64    `json:"session_id"`
	Function    *string   `json:"function"`
	Inputs      *[]string `json:"inputs"`
	RootPath    string    `json:"root_path"`
	PackageName string    `json:"package_name"`
}

func (r requestDataJson) convertToDomain() RequestData {
	return RequestData{
		SessionID:   r.SessionID,
		Function:    *r.Function,
		Inputs:      *r.Inputs,
		RootPath:    r.RootPath,
		PackageName: r.PackageName,
	}
}
