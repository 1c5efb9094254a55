package infra

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPServerUsesConfigTimeouts(t *testing.T) {
	cfg := &Config{
		Port:             "9090",
		HTTPReadTimeout:  11 * time.Second,
		HTTPWriteTimeout: 22 * time.Second,
		HTTPIdleTimeout:  33 * time.Second,
	}
	s := NewHTTPServer(cfg, http.NewServeMux())

	if s.Addr() != ":9090" {
		t.Fatalf("Addr = %q, want :9090", s.Addr())
	}
	if s.server.ReadTimeout != 11*time.Second {
		t.Fatalf("ReadTimeout = %v", s.server.ReadTimeout)
	}
	if s.server.WriteTimeout != 22*time.Second {
		t.Fatalf("WriteTimeout = %v", s.server.WriteTimeout)
	}
	if s.server.IdleTimeout != 33*time.Second {
		t.Fatalf("IdleTimeout = %v", s.server.IdleTimeout)
	}
	if s.server.MaxHeaderBytes != maxHeaderBytes {
		t.Fatalf("MaxHeaderBytes = %d", s.server.MaxHeaderBytes)
	}
}
