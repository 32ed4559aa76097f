package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kdduha/prompt-studio/internal/forge"
	"github.com/kdduha/prompt-studio/internal/metrics"
	"github.com/kdduha/prompt-studio/internal/models"
	"go.uber.org/zap"
)

var (
	ErrUpstreamRequest = errors.New("API request failed")
	ErrUnexpected      = errors.New("an unexpected error occurred")
)

type expander interface {
	Expand(ctx context.Context, prompt string, options map[string]string) Expansion
}

type imageClient interface {
	Txt2Img(ctx context.Context, payload *forge.Txt2ImgPayload) (*forge.Txt2ImgResponse, error)
}

type GenerateService struct {
	logger   *zap.Logger
	expander expander
	images   imageClient
}

func NewGenerateService(logger *zap.Logger, expander expander, images imageClient) *GenerateService {
	return &GenerateService{
		logger:   logger,
		expander: expander,
		images:   images,
	}
}

// Generate expands the request prompt and asks the image server for a batch.
// Errors wrap ErrUpstreamRequest when the image server is unreachable or
// answers with a non-2xx status, and ErrUnexpected otherwise.
func (s *GenerateService) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	expansion := s.expander.Expand(ctx, req.Prompt, req.Options)
	s.logger.Info("prompt expanded",
		zap.String("original_prompt", req.Prompt),
		zap.Any("options", req.Options),
		zap.String("expanded_prompt", expansion.Prompt),
		zap.String("source", string(expansion.Source)),
	)

	payload := buildPayload(expansion.Prompt)

	start := time.Now()
	resp, err := s.images.Txt2Img(ctx, payload)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.Txt2ImgTotal(status)
	metrics.Txt2ImgDuration(status, time.Since(start))

	if err != nil {
		if errors.Is(err, forge.ErrUpstream) {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamRequest, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	images := resp.Images
	if images == nil {
		images = []string{}
	}

	info := parseInfo(resp.Info)
	if info.shape == infoMalformed {
		s.logger.Warn("could not decode info field as JSON string", zap.Error(info.err))
	}

	return &models.GenerateResponse{
		Images:         images,
		ExpandedPrompt: expansion.Prompt,
		ImageInfo:      buildImageInfo(info, len(images), payload.BatchSize),
	}, nil
}
