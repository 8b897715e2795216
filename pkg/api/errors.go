package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      fserrors.Code `json:"code"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id,omitempty"`
}

// statusFor maps an error to an HTTP status by its code.
func statusFor(err error) int {
	switch {
	case fserrors.IsInput(err):
		return http.StatusBadRequest
	case fserrors.Is(err, fserrors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case fserrors.Is(err, fserrors.ErrCodeNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		// Either the client went away or the timeout middleware answers.
		return
	}
	code := fserrors.GetCode(err)
	if code == "" {
		code = fserrors.ErrCodeInternal
	}
	status := statusFor(err)
	msg := fserrors.UserMessage(err)
	if status >= 500 {
		s.logger.Error("request error", "err", err, "request_id", RequestID(r.Context()))
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg, RequestID: RequestID(r.Context())}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
