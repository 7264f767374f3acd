package platform

import (
	"net"
	"net/http"
	"testing"
	"time"

	"contactApp/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_UsesConfigTimeouts(t *testing.T) {
	cfg := core.Config{Addr: ":0", ReadTimeout: time.Second, ReadHeaderTimeout: 2 * time.Second, WriteTimeout: 3 * time.Second, IdleTimeout: 4 * time.Second}
	srv := Server(cfg, http.NotFoundHandler())

	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 3*time.Second, srv.WriteTimeout)
	assert.Equal(t, 4*time.Second, srv.IdleTimeout)
	assert.NotNil(t, srv.ErrorLog)
}

func TestServe_ShutdownIsNotAnError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := core.Config{Addr: addr, ShutdownTimeout: time.Second}
	srv := Server(cfg, http.NotFoundHandler())

	errc := make(chan error, 1)
	go func() { errc <- Serve(srv, cfg) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, Shutdown(srv, cfg))
	assert.NoError(t, <-errc)
}
