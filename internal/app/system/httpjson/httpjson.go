// Package httpjson renders the JSON envelope every endpoint speaks:
//
//	{"success": true, "message": "...", <domain fields>}
//	{"success": false, "message": "...", "error": "..."}
//
// Failure rendering starts from the apperr taxonomy so handlers never pick
// status codes by hand: InvalidInput/PreconditionFailed/Conflict → 400,
// NotFound → 404, StoreFailure → 500. Store failures are logged with their
// cause; the response body carries only the generic message.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/floorhq/floorhub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Envelope is the response body. Fields holds domain payload keys merged at
// the top level of the object.
type Envelope struct {
	Success bool
	Message string
	Error   string
	Fields  map[string]any
}

// OK writes a 200 success envelope with the given message and payload fields.
func OK(w http.ResponseWriter, message string, fields map[string]any) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Fields: fields})
}

// Fail classifies err and writes the matching failure envelope. Unclassified
// errors are treated as store failures.
func Fail(w http.ResponseWriter, log *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	msg := apperr.MessageOf(err)

	status := http.StatusBadRequest
	switch kind {
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.StoreFailure:
		status = http.StatusInternalServerError
		if log != nil {
			log.Error("store failure", zap.Error(err))
		}
	}

	write(w, status, Envelope{Success: false, Message: msg, Error: msg})
}

// Decode parses a JSON request body into dst, returning an InvalidInput
// error on malformed JSON.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Invalid("invalid JSON request body")
	}
	return nil
}

func write(w http.ResponseWriter, status int, env Envelope) {
	body := make(map[string]any, len(env.Fields)+3)
	for k, v := range env.Fields {
		body[k] = v
	}
	body["success"] = env.Success
	if env.Message != "" {
		body["message"] = env.Message
	}
	if env.Error != "" {
		body["error"] = env.Error
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
