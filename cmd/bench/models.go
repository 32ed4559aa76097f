package main

import (
	"encoding/json"
	"time"
)

type GenerateRequest struct {
	Prompt  string            `json:"prompt"`
	Options map[string]string `json:"options,omitempty"`
}

type GenerateResponse struct {
	Images         []string          `json:"images"`
	ExpandedPrompt string            `json:"expanded_prompt"`
	ImageInfo      []json.RawMessage `json:"image_info"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Case struct {
	Name    string
	Request GenerateRequest
}

type BenchResult struct {
	Case      string
	Kind      string
	Duration  time.Duration
	Images    int
	Expanded  bool
	Err       error
	PromptLen int
}

type Agg struct {
	Count    int
	Failures int
	Total    time.Duration
	Images   int
	Expanded int
}

type benchConfig struct {
	Endpoint string        `env:"BENCH_ENDPOINT" envDefault:"http://localhost:8080/generate_images"`
	Rounds   int           `env:"BENCH_ROUNDS" envDefault:"1"`
	Timeout  time.Duration `env:"BENCH_TIMEOUT" envDefault:"10m"`
}
