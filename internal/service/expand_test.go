package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kdduha/prompt-studio/internal/config"
	"github.com/kdduha/prompt-studio/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExpander(c llm.Completer) *PromptExpander {
	return NewPromptExpander(zap.NewNop(), c, config.LLMConfig{Model: "gemini-2.5-flash"})
}

func TestPromptExpander_Expand(t *testing.T) {
	ctx := context.Background()

	t.Run("trims completion", func(t *testing.T) {
		c := &mockCompleter{completeFunc: func(_ context.Context, model, _ string) (string, error) {
			assert.Equal(t, "gemini-2.5-flash", model)
			return "\n  a majestic fox, volumetric light  \n", nil
		}}

		got := newTestExpander(c).Expand(ctx, "fox", map[string]string{"art_style": "anime"})

		assert.Equal(t, Expansion{Prompt: "a majestic fox, volumetric light", Source: SourceExpanded}, got)
		require.Len(t, c.calls, 1)
		assert.Contains(t, c.calls[0], `"fox"`)
		assert.Contains(t, c.calls[0], "Art Style: anime")
	})

	t.Run("falls back to short prompt on error", func(t *testing.T) {
		cause := errors.New("network down")
		c := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return "", cause
		}}

		got := newTestExpander(c).Expand(ctx, "  fox  ", nil)

		assert.True(t, got.IsFallback())
		assert.Equal(t, "  fox  ", got.Prompt)
		assert.ErrorIs(t, got.Err, cause)
	})

	t.Run("fallback with options only is empty", func(t *testing.T) {
		c := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}

		got := newTestExpander(c).Expand(ctx, "", map[string]string{"mood": "calm"})

		assert.True(t, got.IsFallback())
		assert.Empty(t, got.Prompt)
	})

	t.Run("blank completion is a fallback", func(t *testing.T) {
		c := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return "   ", nil
		}}

		got := newTestExpander(c).Expand(ctx, "fox", nil)

		assert.True(t, got.IsFallback())
		assert.Equal(t, "fox", got.Prompt)
		assert.ErrorIs(t, got.Err, llm.ErrEmptyCompletion)
	})
}

func TestPromptExpander_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("second call served from cache", func(t *testing.T) {
		c := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return "detailed fox", nil
		}}
		e := newTestExpander(c)
		e.SetCacheClient(newMockCache())

		first := e.Expand(ctx, "fox", nil)
		second := e.Expand(ctx, "fox", nil)

		assert.Equal(t, SourceExpanded, first.Source)
		assert.Equal(t, Expansion{Prompt: "detailed fox", Source: SourceCached}, second)
		assert.Len(t, c.calls, 1)
	})

	t.Run("fallback is not cached", func(t *testing.T) {
		cache := newMockCache()
		c := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}
		e := newTestExpander(c)
		e.SetCacheClient(cache)

		e.Expand(ctx, "fox", nil)

		assert.Empty(t, cache.data)
	})

	t.Run("cache errors are ignored", func(t *testing.T) {
		cache := newMockCache()
		cache.getErr = errors.New("redis down")
		cache.setErr = errors.New("redis down")
		c := &mockCompleter{completeFunc: func(context.Context, string, string) (string, error) {
			return "detailed fox", nil
		}}
		e := newTestExpander(c)
		e.SetCacheClient(cache)

		got := e.Expand(ctx, "fox", nil)

		assert.Equal(t, Expansion{Prompt: "detailed fox", Source: SourceExpanded}, got)
	})
}
