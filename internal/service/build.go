package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/kdduha/prompt-studio/internal/forge"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func buildInstruction(prompt string, options map[string]string) string {
	parts := []string{expanderRole}

	if strings.TrimSpace(prompt) != "" {
		parts = append(parts, fmt.Sprintf(corePromptTemplate, prompt))
	}

	if lines := renderOptions(options); len(lines) > 0 {
		parts = append(parts, optionsHeader)
		parts = append(parts, lines...)
	}

	parts = append(parts, expanderCue)
	return strings.Join(parts, "\n")
}

// renderOptions formats every non-empty option as "Category Title: value",
// sorted by category key.
func renderOptions(options map[string]string) []string {
	caser := cases.Title(language.Und)

	lines := make([]string, 0, len(options))
	for _, category := range sortedKeys(options) {
		value := strings.TrimSpace(options[category])
		if value == "" {
			continue
		}
		title := caser.String(strings.ReplaceAll(category, "_", " "))
		lines = append(lines, fmt.Sprintf(optionLineTemplate, title, value))
	}
	return lines
}

func buildPayload(prompt string) *forge.Txt2ImgPayload {
	return &forge.Txt2ImgPayload{
		Prompt:      prompt,
		Steps:       steps,
		SamplerName: samplerName,
		NIter:       nIter,
		BatchSize:   batchSize,
		CfgScale:    cfgScale,
		Width:       imageWidth,
		Height:      imageHeight,
	}
}

func getCacheKey(model, prompt string, options map[string]string) string {
	data := []string{model, strings.TrimSpace(prompt)}
	for _, k := range sortedKeys(options) {
		if v := strings.TrimSpace(options[k]); v != "" {
			data = append(data, k+"="+v)
		}
	}

	hash := sha256.Sum256([]byte(strings.Join(data, "-")))
	return hex.EncodeToString(hash[:])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
