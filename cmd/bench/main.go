package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/caarlos0/env/v11"
)

var cases = []Case{
	{Name: "lighthouse", Request: GenerateRequest{Prompt: "a lighthouse at dusk"}},
	{Name: "robot", Request: GenerateRequest{Prompt: "a tiny robot watering plants"}},
	{Name: "fox-styled", Request: GenerateRequest{
		Prompt: "a red fox",
		Options: map[string]string{
			"art_style":           "watercolor",
			"lighting_atmosphere": "golden hour",
		},
	}},
	{Name: "options-only", Request: GenerateRequest{
		Options: map[string]string{
			"genre_theme":         "cyberpunk",
			"subject_character":   "street vendor",
			"environment_setting": "rainy night market",
		},
	}},
}

func main() {
	var cfg benchConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: cfg.Timeout}

	var results []BenchResult
	for round := 0; round < cfg.Rounds; round++ {
		for _, c := range cases {
			res := benchmarkCase(ctx, client, cfg.Endpoint, c)

			if res.Err != nil {
				log.Println("ERR:", res.Case, res.Err)
			} else {
				log.Printf("OK %s %v images=%d", res.Case, res.Duration, res.Images)
			}

			results = append(results, res)
		}
	}

	printMarkdown(results)
}

func benchmarkCase(ctx context.Context, client *http.Client, endpoint string, c Case) BenchResult {
	kind := "prompt"
	if len(c.Request.Options) > 0 {
		kind = "options"
	}

	start := time.Now()
	resp, err := send(ctx, client, endpoint, c.Request)
	res := BenchResult{
		Case:     c.Name,
		Kind:     kind,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		return res
	}

	if len(resp.ImageInfo) != len(resp.Images) {
		res.Err = fmt.Errorf("image_info has %d entries for %d images", len(resp.ImageInfo), len(resp.Images))
	}
	res.Images = len(resp.Images)
	res.PromptLen = len(resp.ExpandedPrompt)
	res.Expanded = resp.ExpandedPrompt != c.Request.Prompt
	return res
}

func send(ctx context.Context, client *http.Client, endpoint string, req GenerateRequest) (*GenerateResponse, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		if err := sonic.Unmarshal(b, &e); err == nil && e.Error != "" {
			return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, e.Error)
		}
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out GenerateResponse
	if err := sonic.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out.Images == nil {
		return nil, errors.New("response has no images field")
	}
	return &out, nil
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		a := m[r.Kind]
		a.Count++
		if r.Err != nil {
			a.Failures++
			m[r.Kind] = a
			continue
		}
		a.Total += r.Duration
		a.Images += r.Images
		if r.Expanded {
			a.Expanded++
		}
		m[r.Kind] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Print("\n## Benchmark Results\n\n")
	fmt.Println("| Kind | Requests | Failures | Expanded | Avg Time | Total Time | Images |")
	fmt.Println("|------|----------|----------|----------|----------|------------|--------|")

	agg := aggregate(results)

	kinds := make([]string, 0, len(agg))
	for k := range agg {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	var (
		totalCount    int
		totalOK       int
		totalDuration time.Duration
	)

	for _, kind := range kinds {
		a := agg[kind]
		ok := a.Count - a.Failures
		var avg time.Duration
		if ok > 0 {
			avg = a.Total / time.Duration(ok)
		}
		fmt.Printf("| %s | %d | %d | %d | %v | %v | %d |\n",
			kind,
			a.Count,
			a.Failures,
			a.Expanded,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			a.Images,
		)
		totalCount += a.Count
		totalOK += ok
		totalDuration += a.Total
	}

	if totalOK > 0 {
		mean := totalDuration / time.Duration(totalOK)
		fmt.Printf("| **ALL** | %d | %d | - | %v | %v | - |\n",
			totalCount,
			totalCount-totalOK,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
		)
	}
}
