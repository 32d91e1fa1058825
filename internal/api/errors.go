package api

import (
	"errors"
	"net/http"
	"strings"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code       brewerrors.Code `json:"code"`
	Message    string          `json:"message"`
	Candidates []string        `json:"candidates,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code brewerrors.Code) int {
	switch {
	case code == brewerrors.ErrCodeFormulaUnavailable, code == brewerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == brewerrors.ErrCodeAmbiguousFormula:
		return http.StatusConflict
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := brewerrors.GetCode(err)
	if code == "" {
		code = brewerrors.ErrCodeInternal
	}
	status := statusFor(code)

	detail := errorDetail{Code: code, Message: brewerrors.UserMessage(err)}
	var amb *brewerrors.AmbiguousFormulaError
	if errors.As(err, &amb) {
		detail.Candidates = amb.Candidates
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		detail.Message = "internal error"
	}
	s.writeJSON(w, status, errorBody{Error: detail})
}
