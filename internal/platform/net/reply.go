package net

import (
	"net/http"

	perr "profanity/internal/platform/errors"
)

// Wire is the error envelope middlewares write before a handler runs
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error maps err to its status and envelope. A nil err is a plain 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{StatusCode: http.StatusOK, Status: http.StatusText(http.StatusOK), RequestID: reqID}
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
