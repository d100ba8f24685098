package analyzer

import (
	"encoding/json"
	"strings"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	"github.com/tidwall/gjson"
)

// parseResponse AI 응답 텍스트에서 정제된 콘서트 목록을 추출합니다.
//
// 응답이 마크다운 코드 펜스(```json ... ```)로 감싸져 있으면 내용만 추출하고,
// JSON 배열이 아닌 단일 객체가 반환된 경우 1건짜리 목록으로 취급합니다.
func parseResponse(text string) ([]RefinedConcert, error) {
	text = stripCodeFence(text)

	if !gjson.Valid(text) {
		return nil, apperrors.New(apperrors.ParsingFailed, "AI 응답이 유효한 JSON이 아닙니다")
	}

	parsed := gjson.Parse(text)

	var items []gjson.Result
	switch {
	case parsed.IsArray():
		items = parsed.Array()
	case parsed.IsObject():
		items = []gjson.Result{parsed}
	default:
		return nil, apperrors.New(apperrors.ParsingFailed, "AI 응답이 JSON 배열 또는 객체가 아닙니다")
	}

	results := make([]RefinedConcert, 0, len(items))
	for _, item := range items {
		var refined RefinedConcert
		if err := json.Unmarshal([]byte(item.Raw), &refined); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "AI 응답 항목의 형식이 올바르지 않습니다")
		}
		refined.Raw = json.RawMessage(item.Raw)
		results = append(results, refined)
	}

	return results, nil
}

// stripCodeFence 마크다운 코드 펜스로 감싸진 텍스트에서 내용을 추출합니다.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	return text
}
