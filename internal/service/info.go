package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/kdduha/prompt-studio/internal/models"
)

type infoShape int

const (
	infoAbsent infoShape = iota
	infoList
	infoObject
	infoMalformed
)

func (s infoShape) String() string {
	switch s {
	case infoList:
		return "list"
	case infoObject:
		return "object"
	case infoMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

var errUnsupportedInfo = errors.New("info is neither a list nor an object")

// parsedInfo is the decoded generation-info field. records is set for
// infoList, base for infoObject and err for infoMalformed.
type parsedInfo struct {
	shape   infoShape
	records []models.ImageInfo
	base    models.ImageInfo
	err     error
}

// parseInfo decodes the txt2img info field. Only a JSON string is
// considered; its contents must be a list of per-image documents or a
// single object shared by the whole batch.
func parseInfo(raw json.RawMessage) parsedInfo {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return parsedInfo{shape: infoAbsent}
	}

	var encoded string
	if err := sonic.Unmarshal(raw, &encoded); err != nil {
		return malformedInfo(err)
	}

	var probe any
	if err := sonic.UnmarshalString(encoded, &probe); err != nil {
		return malformedInfo(err)
	}

	switch probe.(type) {
	case []any:
		var elems []json.RawMessage
		if err := sonic.UnmarshalString(encoded, &elems); err != nil {
			return malformedInfo(err)
		}
		records := make([]models.ImageInfo, 0, len(elems))
		for i, elem := range elems {
			rec, err := decodeInfoElement(elem)
			if err != nil {
				return malformedInfo(fmt.Errorf("element %d: %w", i, err))
			}
			records = append(records, rec)
		}
		return parsedInfo{shape: infoList, records: records}
	case map[string]any:
		var base models.ImageInfo
		if err := sonic.UnmarshalString(encoded, &base); err != nil {
			return malformedInfo(err)
		}
		return parsedInfo{shape: infoObject, base: base}
	default:
		return malformedInfo(errUnsupportedInfo)
	}
}

// decodeInfoElement accepts a JSON string holding an object, or the object
// itself.
func decodeInfoElement(elem json.RawMessage) (models.ImageInfo, error) {
	var rec models.ImageInfo

	elem = bytes.TrimSpace(elem)
	if len(elem) > 0 && elem[0] == '"' {
		var s string
		if err := sonic.Unmarshal(elem, &s); err != nil {
			return rec, err
		}
		elem = []byte(s)
	}

	err := sonic.Unmarshal(elem, &rec)
	return rec, err
}

func malformedInfo(err error) parsedInfo {
	return parsedInfo{shape: infoMalformed, err: err}
}

// buildImageInfo returns exactly imageCount records.
func buildImageInfo(info parsedInfo, imageCount, batch int) []models.ImageInfo {
	var records []models.ImageInfo

	switch info.shape {
	case infoList:
		records = info.records
	case infoObject:
		records = deriveBatch(info.base, batch)
	}

	return fitToImages(records, imageCount)
}

// deriveBatch expands a shared info object into one record per image with
// consecutive seeds. A missing base seed stays missing.
func deriveBatch(base models.ImageInfo, batch int) []models.ImageInfo {
	records := make([]models.ImageInfo, 0, batch)
	for i := 0; i < batch; i++ {
		rec := base
		if base.Seed != nil {
			seed := *base.Seed + int64(i)
			rec.Seed = &seed
		}
		records = append(records, rec)
	}
	return records
}

func fitToImages(records []models.ImageInfo, imageCount int) []models.ImageInfo {
	out := make([]models.ImageInfo, imageCount)
	copy(out, records)
	return out
}
