package api

import (
	"time"

	"github.com/lookbusy1344/scriptcore/service"
)

// SessionCreateResponse is returned from creating a session.
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStatusResponse is the current status of a session.
type SessionStatusResponse struct {
	SessionID string `json:"sessionId"`
	State     string `json:"state"`
	Cursor    int    `json:"cursor"`
	Error     string `json:"error,omitempty"`
}

// LoadProgramRequest carries script source to load into a session.
type LoadProgramRequest struct {
	Source string `json:"source"`
}

// LoadProgramResponse reports the outcome of loading a program.
type LoadProgramResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

// SlotsResponse lists every occupied slot.
type SlotsResponse struct {
	Slots []service.SlotEntry `json:"slots"`
}

// LabelsResponse lists every label and its instruction index.
type LabelsResponse struct {
	Labels map[string]int `json:"labels"`
}

// SourceMapResponse lists every instruction's source span.
type SourceMapResponse struct {
	Entries []service.SourceMapEntry `json:"entries"`
}

// BreakpointRequest is the POST body that adds a breakpoint at an
// instruction index. Removal (DELETE) takes the index from the "index"
// query parameter instead.
type BreakpointRequest struct {
	Index int `json:"index"`
}

// BreakpointsResponse lists all currently set breakpoints.
type BreakpointsResponse struct {
	Breakpoints []service.BreakpointInfo `json:"breakpoints"`
}

// StdinRequest supplies one reply to a pending Input call.
type StdinRequest struct {
	Data string `json:"data"`
}

// OutputResponse is the buffered output since the last poll.
type OutputResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is the JSON body for a non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse is a generic acknowledgement body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
