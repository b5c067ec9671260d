package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FieldViolation is one entry of a 422 detail array. Loc is
// ["body", "<field path>"] in the server's scheme.
type FieldViolation struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// APIError is a non-2xx response from the admin API. Detail carries the
// plain message when the body was a string; Fields carries the per-field
// entries of a validation rejection.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     []FieldViolation
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.FieldMessage())
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// FieldMessage renders the first field violation as a user-facing string,
// e.g. "matchCriteria[0].tag: Tag must be in GGGG,EEEE format.".
func (e *APIError) FieldMessage() string {
	if len(e.Fields) == 0 {
		return e.Detail
	}
	v := e.Fields[0]
	if len(v.Loc) >= 2 {
		return v.Loc[1] + ": " + v.Msg
	}
	return v.Msg
}

// FieldErrors returns the violations keyed by field path, for binding
// messages back onto form inputs.
func (e *APIError) FieldErrors() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Fields))
	for _, v := range e.Fields {
		if len(v.Loc) >= 2 {
			out[v.Loc[1]] = v.Msg
		}
	}
	return out
}

// decodeAPIError parses an error response body. The detail value is either
// a string or an array of field violations; an unreadable body still yields
// a usable error with the status code.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Detail == nil {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}

	var fields []FieldViolation
	if err := json.Unmarshal(envelope.Detail, &fields); err == nil {
		apiErr.Fields = fields
	}
	return apiErr
}
