package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSynthesisHooks{}
	s.OnSynthesisStart(ctx, "marble", 640, 480)
	s.OnSynthesisComplete(ctx, "marble", time.Second, nil)
	s.OnBatchComplete(ctx, 3, 1, time.Second)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/backgrounds")
	h.OnResponse(ctx, "POST", "/v1/backgrounds", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Synthesis().(NoopSynthesisHooks); !ok {
		t.Error("Synthesis() should return NoopSynthesisHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testSynthesisHooks{}
	SetSynthesisHooks(custom)
	if Synthesis() != custom {
		t.Error("SetSynthesisHooks should set custom hooks")
	}

	Reset()
	if _, ok := Synthesis().(NoopSynthesisHooks); !ok {
		t.Error("Reset() should restore NoopSynthesisHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSynthesisHooks{}
	SetSynthesisHooks(custom)
	SetSynthesisHooks(nil)
	if Synthesis() != custom {
		t.Error("SetSynthesisHooks(nil) should be ignored")
	}
}

func TestLogHooksInstall(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	h.Install()

	ctx := context.Background()
	Synthesis().OnSynthesisComplete(ctx, "cloud", time.Millisecond, errors.New("boom"))
	Cache().OnCacheHit(ctx, "artifact")
	HTTP().OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"synthesis failed", "cache hit", "/healthz"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testSynthesisHooks struct{ NoopSynthesisHooks }
