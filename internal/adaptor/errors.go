package adaptor

import (
	"errors"
	"net/http"

	"wheelshare/pkg/apperr"
	"wheelshare/pkg/utils"

	"go.uber.org/zap"
)

// statusFor maps error codes to HTTP statuses. Unknown codes fall through to
// 500 so storage failures never masquerade as client errors.
func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeNotFound, apperr.CodeAddressNotFound:
		return http.StatusNotFound
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeInvalidState, apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeCapacityExceeded:
		return http.StatusConflict
	case apperr.CodeForbidden:
		return http.StatusForbidden
	case apperr.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperr.CodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError translates a usecase error into an HTTP response.
// Internal details stay in the logs; clients get the code and message only.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	code := apperr.CodeOf(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		log.Error("Operation failed",
			zap.String("operation", operation),
			zap.Error(err))
		utils.ResponseErrorCode(w, status, string(code), "Internal server error")
		return
	}

	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	utils.ResponseErrorCode(w, status, string(code), message)
}
