package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmarkCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"images":["a","b","c"],"expanded_prompt":"a detailed lighthouse","image_info":[{},{},{}]}`)
	}))
	defer srv.Close()

	res := benchmarkCase(context.Background(), srv.Client(), srv.URL, cases[0])

	require.NoError(t, res.Err)
	assert.Equal(t, 3, res.Images)
	assert.True(t, res.Expanded)
	assert.Equal(t, "prompt", res.Kind)
}

func TestSend_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"API request failed: boom"}`)
	}))
	defer srv.Close()

	_, err := send(context.Background(), srv.Client(), srv.URL, GenerateRequest{Prompt: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "API request failed: boom")
}

func TestAggregate(t *testing.T) {
	agg := aggregate([]BenchResult{
		{Kind: "prompt", Duration: time.Second, Images: 3, Expanded: true},
		{Kind: "prompt", Err: errors.New("x")},
		{Kind: "options", Duration: 2 * time.Second, Images: 3},
	})

	assert.Equal(t, Agg{Count: 2, Failures: 1, Total: time.Second, Images: 3, Expanded: 1}, agg["prompt"])
	assert.Equal(t, Agg{Count: 1, Total: 2 * time.Second, Images: 3}, agg["options"])
}
