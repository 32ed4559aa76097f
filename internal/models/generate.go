package models

import (
	"errors"
	"strings"
)

var ErrEmptyRequest = errors.New("please enter a prompt or select at least one option")

// GenerateRequest represents request for generate_images endpoint
type GenerateRequest struct {
	Prompt  string            `json:"prompt" example:"a lighthouse at dusk"`
	Options map[string]string `json:"options" example:"art_style:oil painting"`
}

// Validate requires a prompt or at least one selected option.
func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) != "" {
		return nil
	}
	for _, v := range r.Options {
		if strings.TrimSpace(v) != "" {
			return nil
		}
	}
	return ErrEmptyRequest
}

type GenerateResponse struct {
	Images         []string    `json:"images"`
	ExpandedPrompt string      `json:"expanded_prompt"`
	ImageInfo      []ImageInfo `json:"image_info"`
}

// ImageInfo holds per-image generation parameters. A nil field means the
// value could not be recovered and is serialized as null.
type ImageInfo struct {
	Seed        *int64   `json:"seed"`
	Steps       *int     `json:"steps"`
	SamplerName *string  `json:"sampler_name"`
	CfgScale    *float64 `json:"cfg_scale"`
	Width       *int     `json:"width"`
	Height      *int     `json:"height"`
	Prompt      *string  `json:"prompt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
