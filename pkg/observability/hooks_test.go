package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEnumerationHooks{}
	e.OnEnumerateStart(ctx, "trees", 9, 0)
	e.OnEnumerateComplete(ctx, "trees", 286, time.Second, nil)
	e.OnCensusComplete(ctx, "partitions", 20, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "count")
	c.OnCacheMiss(ctx, "census")
	c.OnCacheSet(ctx, "count", 16)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/v1/trees/{n}")
	h.OnResponse(ctx, "GET", "/v1/trees/{n}", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	assert.IsType(t, NoopEnumerationHooks{}, Enumeration())
	assert.IsType(t, NoopCacheHooks{}, Cache())
	assert.IsType(t, NoopHTTPHooks{}, HTTP())

	customEnum := &testEnumerationHooks{}
	SetEnumerationHooks(customEnum)
	assert.Same(t, customEnum, Enumeration())

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	assert.Same(t, customCache, Cache())

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	assert.Same(t, customHTTP, HTTP())

	Reset()
	assert.IsType(t, NoopEnumerationHooks{}, Enumeration(), "Reset should restore the no-op hooks")
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testEnumerationHooks{}
	SetEnumerationHooks(custom)
	SetEnumerationHooks(nil)

	assert.Same(t, custom, Enumeration(), "SetEnumerationHooks(nil) should be ignored")
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h, err := NewPrometheusHooks(reg)
	require.NoError(t, err)

	h.OnEnumerateComplete(ctx, "trees", 286, time.Millisecond, nil)
	h.OnEnumerateComplete(ctx, "trees", 10, time.Millisecond, context.Canceled)
	h.OnCensusComplete(ctx, "partitions", 12, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "count")
	h.OnCacheMiss(ctx, "count")
	h.OnCacheSet(ctx, "count", 32)
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"items", testutil.ToFloat64(h.items.WithLabelValues("trees")), 296},
		{"ok runs", testutil.ToFloat64(h.runs.WithLabelValues("trees", "enumerate", "ok")), 1},
		{"canceled runs", testutil.ToFloat64(h.runs.WithLabelValues("trees", "enumerate", "canceled")), 1},
		{"failed census", testutil.ToFloat64(h.runs.WithLabelValues("partitions", "census", "error")), 1},
		{"cache hits", testutil.ToFloat64(h.cacheOps.WithLabelValues("count", "hit")), 1},
		{"cache misses", testutil.ToFloat64(h.cacheOps.WithLabelValues("count", "miss")), 1},
		{"cache bytes", testutil.ToFloat64(h.cacheBytes.WithLabelValues("count")), 32},
		{"http requests", testutil.ToFloat64(h.httpRequests.WithLabelValues("GET", "/healthz", "200")), 1},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}

	_, err = NewPrometheusHooks(reg)
	assert.Error(t, err, "registering twice on one registry should fail")
}

type testEnumerationHooks struct{ NoopEnumerationHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
