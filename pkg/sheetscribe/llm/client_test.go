package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCallSendsMessagesRequest(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, DefaultVersion, r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello"}]}`))
	}))
	defer srv.Close()

	c := NewClient(" sk-test ", Options{Endpoint: srv.URL})
	reply, err := c.Call(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "say hello", got.Messages[0].Content)
}

func TestClientCallUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", Options{Endpoint: srv.URL}).Call(context.Background(), "hi")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Equal(t, "authentication_error", upstream.Type)
	assert.Equal(t, "API Error: invalid x-api-key", err.Error())
	assert.JSONEq(t, `{"type":"authentication_error","message":"invalid x-api-key"}`, string(upstream.RawError()))
}

func TestClientCallUnstructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient("k", Options{Endpoint: srv.URL}).Call(context.Background(), "hi")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "API Error: Bad Gateway", err.Error())
	assert.JSONEq(t, `{"message":"Bad Gateway"}`, string(upstream.RawError()))
}

func TestClientCallMissingKey(t *testing.T) {
	_, err := NewClient("  ", DefaultOptions()).Call(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClientCallEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", Options{Endpoint: srv.URL}).Call(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestClientCallJoinsTextBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"a"},{"type":"tool_use"},{"type":"text","text":"b"}]}`))
	}))
	defer srv.Close()

	reply, err := NewClient("k", Options{Endpoint: srv.URL}).Call(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ab", reply)
}

func TestRelayClientCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RelayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sk-relay", req.APIKey)
		assert.Equal(t, "analyze", req.Prompt)
		_ = json.NewEncoder(w).Encode(RelayResponse{Content: "ok"})
	}))
	defer srv.Close()

	reply, err := NewRelayClient(srv.URL, "sk-relay", nil).Call(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestRelayClientEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(RelayResponse{})
	}))
	defer srv.Close()

	reply, err := NewRelayClient(srv.URL, "k", nil).Call(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyReply)
	assert.Empty(t, reply)
}

func TestRelayClientCallError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL, "k", nil).Call(context.Background(), "hi")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Equal(t, "API Error: slow down", err.Error())
}

func TestRelayClientMissingKey(t *testing.T) {
	_, err := NewRelayClient("", "", nil).Call(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
