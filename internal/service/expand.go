package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdduha/prompt-studio/internal/config"
	"github.com/kdduha/prompt-studio/internal/llm"
	"github.com/kdduha/prompt-studio/internal/metrics"
	"go.uber.org/zap"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type ExpansionSource string

const (
	SourceExpanded ExpansionSource = "expanded"
	SourceCached   ExpansionSource = "cached"
	SourceFallback ExpansionSource = "fallback"
)

// Expansion is the outcome of a prompt expansion. A fallback carries the
// completer error and the unmodified short prompt.
type Expansion struct {
	Prompt string
	Source ExpansionSource
	Err    error
}

func (e Expansion) IsFallback() bool {
	return e.Source == SourceFallback
}

type PromptExpander struct {
	logger    *zap.Logger
	completer llm.Completer
	modelName string
	cache     Cache
}

func NewPromptExpander(logger *zap.Logger, completer llm.Completer, cfg config.LLMConfig) *PromptExpander {
	return &PromptExpander{
		logger:    logger,
		completer: completer,
		modelName: cfg.Model,
	}
}

func (p *PromptExpander) SetCacheClient(cache Cache) {
	p.cache = cache
}

// Expand never fails; on any completer error it returns a fallback holding
// the original short prompt.
func (p *PromptExpander) Expand(ctx context.Context, prompt string, options map[string]string) Expansion {
	key := getCacheKey(p.modelName, prompt, options)

	if p.cache != nil {
		cached, found, err := p.cache.Get(ctx, key)
		if err != nil {
			p.logger.Warn("cache get error", zap.Error(err))
		}
		if found {
			p.logger.Debug("expansion served from cache")
			return p.result(Expansion{Prompt: cached, Source: SourceCached})
		}
	}

	text, err := p.completer.Complete(ctx, p.modelName, buildInstruction(prompt, options))
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = fmt.Errorf("model %s: %w", p.modelName, llm.ErrEmptyCompletion)
		}
	}
	if err != nil {
		p.logger.Warn("error expanding prompt, using original prompt",
			zap.String("model", p.modelName),
			zap.Error(err),
		)
		return p.result(Expansion{Prompt: prompt, Source: SourceFallback, Err: err})
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, text); err != nil {
			p.logger.Warn("failed to set cache", zap.Error(err))
		}
	}
	return p.result(Expansion{Prompt: text, Source: SourceExpanded})
}

func (p *PromptExpander) result(e Expansion) Expansion {
	metrics.PromptExpansionTotal(string(e.Source))
	return e
}
