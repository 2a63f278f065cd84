package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEWriter_WriteEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("frame", map[string]int{"value": 42}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: frame\ndata: {\"value\":42}\n\n", rec.Body.String())
}

func TestSSEWriter_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	err = sse.WriteEvent("modal", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errEncode))
	assert.Empty(t, rec.Body.String(), "nothing written for an unencodable event")

	streamFailed(sse, err)
	assert.Equal(t, "event: error\ndata: {\"error\":\"Failed to encode modal state\"}\n\n", rec.Body.String())
}

func TestStreamFailed_WriteErrorIsSilent(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	streamFailed(sse, errors.New("broken pipe"))
	assert.Empty(t, rec.Body.String())
}
