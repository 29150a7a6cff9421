package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if got := client.Options().ClientName; got != clientName {
		t.Fatalf("unexpected client name %q", got)
	}
}

func TestConnect_WithPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	if _, err := Connect(context.Background(), Config{Addr: mr.Addr()}); err == nil {
		t.Fatalf("expected auth failure without password")
	}
	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "s3cret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = client.Close()
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Connect(context.Background(), Config{Addr: addr}); err == nil {
		t.Fatalf("expected error for a closed server")
	}
}
