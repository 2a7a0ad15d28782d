package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wheelshare/pkg/apperr"
	"wheelshare/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code apperr.Code
		want int
	}{
		{apperr.CodeNotFound, http.StatusNotFound},
		{apperr.CodeAddressNotFound, http.StatusNotFound},
		{apperr.CodeInvalidArgument, http.StatusBadRequest},
		{apperr.CodeInvalidState, http.StatusConflict},
		{apperr.CodeCapacityExceeded, http.StatusConflict},
		{apperr.CodeConflict, http.StatusConflict},
		{apperr.CodeForbidden, http.StatusForbidden},
		{apperr.CodeUnauthorized, http.StatusUnauthorized},
		{apperr.CodeUpstreamUnavailable, http.StatusBadGateway},
		{apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.code), string(tt.code))
	}
}

func TestHandleServiceError_ClientError(t *testing.T) {
	rec := httptest.NewRecorder()

	handleServiceError(rec, zap.NewNop(), apperr.CapacityExceeded("only 2 seats available"), "create booking")

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, string(apperr.CodeCapacityExceeded), resp.Code)
	assert.Equal(t, "only 2 seats available", resp.Message)
}

func TestHandleServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	wrapped := apperr.Wrap(apperr.CodeInternal, "load ride", errors.New("pq: connection refused"))
	handleServiceError(rec, zap.NewNop(), wrapped, "get ride")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestHandleServiceError_UnknownErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()

	handleServiceError(rec, zap.NewNop(), errors.New("something unexpected"), "op")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "something unexpected")
}
