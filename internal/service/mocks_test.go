package service

import (
	"context"

	"github.com/kdduha/prompt-studio/internal/forge"
)

type mockCompleter struct {
	calls        []string
	completeFunc func(ctx context.Context, model, prompt string) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	m.calls = append(m.calls, prompt)
	return m.completeFunc(ctx, model, prompt)
}

type mockCache struct {
	data   map[string]string
	getErr error
	setErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string]string{}}
}

func (m *mockCache) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

type mockExpander struct {
	expandFunc func(ctx context.Context, prompt string, options map[string]string) Expansion
}

func (m *mockExpander) Expand(ctx context.Context, prompt string, options map[string]string) Expansion {
	return m.expandFunc(ctx, prompt, options)
}

type mockImageClient struct {
	calls       []*forge.Txt2ImgPayload
	txt2imgFunc func(ctx context.Context, payload *forge.Txt2ImgPayload) (*forge.Txt2ImgResponse, error)
}

func (m *mockImageClient) Txt2Img(ctx context.Context, payload *forge.Txt2ImgPayload) (*forge.Txt2ImgResponse, error) {
	m.calls = append(m.calls, payload)
	return m.txt2imgFunc(ctx, payload)
}
