package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/hlog"
)

// errorBody is the failure envelope every endpoint shares.
type errorBody struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	detail := errorDetail(err)
	event := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error().Err(err)
	}
	event.Int("status", status).Str("detail", detail).Msg("request failed")
	respondJSON(w, status, errorBody{Detail: detail})
}

func statusForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return http.StatusBadRequest
	case errbuilder.CodeNotFound:
		return http.StatusNotFound
	case errbuilder.CodePermissionDenied:
		return http.StatusForbidden
	case errbuilder.CodeAlreadyExists, errbuilder.CodeFailedPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorDetail(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// decodeJSON reads the request body into out, mapping malformed input to
// an invalid-argument failure.
func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid request body").
			WithCause(err)
	}
	return nil
}
