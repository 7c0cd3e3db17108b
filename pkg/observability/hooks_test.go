package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCompileHooks{}
	c.OnCompileStart(ctx, "html", 12)
	c.OnCompileComplete(ctx, "html", 1024, time.Second, nil)

	k := NoopCacheHooks{}
	k.OnHit(ctx, "pdf")
	k.OnMiss(ctx, "pdf")
	k.OnSet(ctx, "pdf", 2048)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/")
	h.OnResponse(ctx, "GET", "/", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Compile().(NoopCompileHooks); !ok {
		t.Error("Compile() should return NoopCompileHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customCompile := &testCompileHooks{}
	SetCompileHooks(customCompile)
	if Compile() != customCompile {
		t.Error("SetCompileHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Compile().(NoopCompileHooks); !ok {
		t.Error("Reset() should restore NoopCompileHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testCompileHooks{}
	SetCompileHooks(custom)
	SetCompileHooks(nil)

	if Compile() != custom {
		t.Error("SetCompileHooks(nil) should be ignored")
	}
}

type testCompileHooks struct{ NoopCompileHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
