// Package forge is a client for the Stable Diffusion WebUI / Forge HTTP API.
package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kdduha/prompt-studio/internal/config"
)

const txt2imgPath = "/sdapi/v1/txt2img"

// ErrUpstream marks transport failures and non-2xx answers from the server.
var ErrUpstream = errors.New("forge request failed")

type Txt2ImgPayload struct {
	Prompt      string  `json:"prompt"`
	Steps       int     `json:"steps"`
	SamplerName string  `json:"sampler_name"`
	NIter       int     `json:"n_iter"`
	BatchSize   int     `json:"batch_size"`
	CfgScale    float64 `json:"cfg_scale"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

// Txt2ImgResponse keeps Info raw: the server encodes it as a JSON string
// holding another JSON document.
type Txt2ImgResponse struct {
	Images     []string        `json:"images"`
	Parameters map[string]any  `json:"parameters"`
	Info       json.RawMessage `json:"info"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.ForgeConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Txt2Img(ctx context.Context, payload *Txt2ImgPayload) (*Txt2ImgResponse, error) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+txt2imgPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d %s for url %s: %s",
			ErrUpstream,
			resp.StatusCode,
			http.StatusText(resp.StatusCode),
			req.URL,
			strings.TrimSpace(string(b)),
		)
	}

	var out Txt2ImgResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
