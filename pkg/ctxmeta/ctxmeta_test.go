package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
)

type idPair struct {
	name string
	with func(context.Context, string) context.Context
	from func(context.Context) (string, bool)
}

var ids = []idPair{
	{"request_id", ctxmeta.WithRequestID, ctxmeta.RequestIDFromContext},
	{"session_id", ctxmeta.WithSessionID, ctxmeta.SessionIDFromContext},
}

func TestIDs_PutAndGet(t *testing.T) {
	for _, id := range ids {
		t.Run(id.name, func(t *testing.T) {
			parent := context.Background()
			ctx := id.with(parent, "v-1")

			if got, ok := id.from(ctx); !ok || got != "v-1" {
				t.Fatalf("want v-1, got %q ok=%v", got, ok)
			}
			if _, ok := id.from(parent); ok {
				t.Fatalf("parent context must stay untouched")
			}
		})
	}
}

func TestIDs_EmptyValueKeepsContext(t *testing.T) {
	for _, id := range ids {
		parent := context.Background()
		if ctx := id.with(parent, ""); ctx != parent {
			t.Fatalf("%s: empty id must return the same ctx", id.name)
		}
	}
}

func TestIDs_NilContext(t *testing.T) {
	for _, id := range ids {
		if ctx := id.with(nil, "v"); ctx != nil { //nolint:staticcheck // nil ctx is tolerated
			t.Fatalf("%s: want nil ctx back", id.name)
		}
		if got, ok := id.from(nil); ok || got != "" { //nolint:staticcheck // nil ctx is tolerated
			t.Fatalf("%s: nil ctx must yield empty/false, got %q", id.name, got)
		}
	}
}

func TestIDs_StringKeyIsNotVisible(t *testing.T) {
	//nolint:staticcheck // plain string key on purpose
	ctx := context.WithValue(context.Background(), "request_id", "raw")
	if _, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		t.Fatalf("a plain string key must not collide with the typed key")
	}
}

func TestSessionID_IndependentFromRequestID(t *testing.T) {
	ctx := ctxmeta.WithSessionID(context.Background(), "sess-1")
	ctx = ctxmeta.WithRequestID(ctx, "req-1")

	if s, _ := ctxmeta.SessionIDFromContext(ctx); s != "sess-1" {
		t.Fatalf("session id lost: %q", s)
	}
	if r, _ := ctxmeta.RequestIDFromContext(ctx); r != "req-1" {
		t.Fatalf("request id lost: %q", r)
	}
}
