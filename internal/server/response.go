package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	mm "github.com/Decentr-net/argus/internal/middleware"
)

func writeOK(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeOK(w, status, Error{Error: message})
}

func writeInternalErrorf(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	mm.GetLogger(ctx).Errorf(format, args...)

	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid body: %s", errInvalidRequest, err.Error())
	}
	return nil
}
