package main

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerDeliversSlowConfirmationResponses(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Stand-in for the Stars confirmation long-poll, which answers
		// only once the payment status flips.
		time.Sleep(150 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outcome":"confirmed"}`))
	})

	server := newHTTPServer(0, handler)
	assert.Zero(t, server.WriteTimeout, "a server write deadline would cut off confirmations slower than it")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = server.Serve(listener) }()
	defer server.Close()

	resp, err := http.Get("http://" + listener.Addr().String() + "/api/v1/payment/stars/o1/confirm")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcome":"confirmed"}`, string(body))
}
