// Package http serves the permit lookup page and a JSON API over HTTP.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/permitsearch"
)

// errorStatus maps application error codes to HTTP status codes.
var errorStatus = map[string]int{
	permitsearch.EINVALID:      http.StatusBadRequest,
	permitsearch.ENOSTATE:      http.StatusBadRequest,
	permitsearch.EEMPTYZIP:     http.StatusBadRequest,
	permitsearch.EZIPFORMAT:    http.StatusBadRequest,
	permitsearch.EEMPTYADDRESS: http.StatusBadRequest,
	permitsearch.ENOTFOUND:     http.StatusNotFound,
	permitsearch.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if status, ok := errorStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body written for failed API requests.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeError writes err as a JSON error response. Internal errors are logged.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := permitsearch.ErrorCode(err)
	if code == permitsearch.EINTERNAL {
		logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, ErrorStatusCode(code), ErrorResponse{
		Code:  code,
		Error: permitsearch.ErrorMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
