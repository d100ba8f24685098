// Package analyzer 크롤링된 콘서트 원본 데이터를 Gemini AI로 분석·정제·보강합니다.
//
// 크롤링 결과는 '콘서트가 실제로 존재한다는 증거'로 취급하며, 빠진 세부정보
// (공연시간, 티켓가격, 예매시작일)는 Google Search grounding을 통해 웹 검색으로
// 보충합니다. 크롤링 결과가 없으면 AI 직접 검색(폴백 모드)으로 전환됩니다.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/concert-sync-server/internal/service/crawler"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	"google.golang.org/genai"
)

// component Analyzer 계층의 로깅용 컴포넌트 이름
const component = "analyzer"

// maxGenerateRetries rate limit(429) 발생 시 최대 재시도 횟수입니다.
const maxGenerateRetries = 3

// defaultRetryWait 429 응답에 재시도 힌트가 없을 때의 대기 시간입니다.
const defaultRetryWait = 25 * time.Second

// retryHintPattern 429 에러 메시지에서 재시도 대기 시간(초) 힌트를 찾는 패턴입니다.
var retryHintPattern = regexp.MustCompile(`(?i)retry.*?(\d+)`)

// RefinedConcert AI 분석을 거쳐 정제된 콘서트 정보입니다.
type RefinedConcert struct {
	ConcertTitle string  `json:"concert_title"`
	Venue        string  `json:"venue"`
	ConcertDate  string  `json:"concert_date"`
	ConcertTime  string  `json:"concert_time"`
	TicketPrice  string  `json:"ticket_price"`
	BookingDate  string  `json:"booking_date"`
	BookingURL   string  `json:"booking_url"`
	Source       string  `json:"source"`
	Confidence   float64 `json:"confidence"`
	DataSources  string  `json:"data_sources"`
	IsVerified   bool    `json:"is_verified"`

	// Raw AI 응답에서 이 항목에 해당하는 JSON 원문입니다. (raw_response 컬럼에 저장)
	Raw json.RawMessage `json:"-"`
}

// ConcertAnalyzer 크롤링 데이터를 정제된 콘서트 정보로 변환하는 인터페이스입니다.
type ConcertAnalyzer interface {
	// Analyze 크롤링 데이터를 AI로 분석·정제합니다.
	// rawData가 비어있으면 AI 직접 검색(폴백 모드)으로 전환됩니다.
	Analyze(ctx context.Context, artistName string, rawData []crawler.RawConcertData) ([]RefinedConcert, error)

	// Enabled AI 분석 기능의 활성화 여부를 반환합니다.
	Enabled() bool
}

// GeminiAnalyzer Gemini API 기반 ConcertAnalyzer 구현체입니다.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

var _ ConcertAnalyzer = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer Gemini 분석기를 생성합니다.
// API 키가 비어있으면 분석 기능이 비활성화된 분석기를 반환합니다.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		applog.WithComponent(component).Warn("AI API 키가 설정되지 않아 AI 분석 기능이 비활성화됩니다")
		return &GeminiAnalyzer{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "Gemini 클라이언트 생성에 실패했습니다")
	}

	return &GeminiAnalyzer{client: client, model: model}, nil
}

func (a *GeminiAnalyzer) Enabled() bool {
	return a.client != nil
}

// Analyze 크롤링 데이터를 AI로 분석·정제·보강합니다.
//
// AI가 크롤링 항목 수보다 많은 결과를 반환하면(임의 추가), 크롤링의
// booking_url과 매칭되는 항목만 유지하거나 크롤링 항목 수로 잘라냅니다.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, artistName string, rawData []crawler.RawConcertData) ([]RefinedConcert, error) {
	if !a.Enabled() {
		return nil, nil
	}

	if len(rawData) == 0 {
		return a.fallbackSearch(ctx, artistName)
	}

	serialized, err := json.MarshalIndent(rawData, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "크롤링 데이터 직렬화에 실패했습니다")
	}

	text, err := a.generateWithRetry(ctx, buildAnalysisPrompt(artistName, string(serialized)))
	if err != nil {
		return nil, err
	}

	results, err := parseResponse(text)
	if err != nil {
		return nil, err
	}

	if len(results) > len(rawData) {
		applog.WithComponentAndFields(component, applog.Fields{
			"artist":        artistName,
			"refined_count": len(results),
			"crawled_count": len(rawData),
		}).Warn("AI 결과가 크롤링 데이터보다 많아 초과분을 제거합니다")
		results = limitToCrawlEvidence(results, rawData)
	}

	return results, nil
}

// fallbackSearch 크롤링 데이터가 없을 때 AI 직접 검색으로 콘서트 정보를 찾습니다.
func (a *GeminiAnalyzer) fallbackSearch(ctx context.Context, artistName string) ([]RefinedConcert, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"artist": artistName,
	}).Info("크롤링 결과가 없어 AI 직접 검색으로 전환합니다")

	today := time.Now().Format("2006-01-02")
	text, err := a.generateWithRetry(ctx, buildFallbackPrompt(artistName, today))
	if err != nil {
		return nil, err
	}

	return parseResponse(text)
}

// generateWithRetry Gemini API를 호출합니다. rate limit(429) 발생 시
// 에러 메시지의 재시도 힌트(+5초) 또는 기본 대기 시간(25초) 후 재시도합니다.
// 모든 호출에 Google Search grounding이 활성화됩니다.
func (a *GeminiAnalyzer) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	for attempt := 0; ; attempt++ {
		resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), config)
		if err != nil {
			if strings.Contains(err.Error(), "429") && attempt < maxGenerateRetries {
				wait := retryWait(err.Error())
				applog.WithComponentAndFields(component, applog.Fields{
					"wait_seconds": wait.Seconds(),
					"attempt":      fmt.Sprintf("%d/%d", attempt+1, maxGenerateRetries),
				}).Info("Rate limit 도달, 잠시 후 재시도합니다")

				select {
				case <-ctx.Done():
					return "", apperrors.Wrap(ctx.Err(), apperrors.Timeout, "AI 분석이 취소되었습니다")
				case <-time.After(wait):
				}
				continue
			}
			return "", apperrors.Wrap(err, apperrors.ExecutionFailed, "Gemini API 호출에 실패했습니다")
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0].Text == "" {
			return "", apperrors.New(apperrors.ExecutionFailed, "Gemini API 응답이 비어있습니다")
		}

		return resp.Candidates[0].Content.Parts[0].Text, nil
	}
}

// retryWait 429 에러 메시지에서 재시도 대기 시간을 추출합니다.
// 힌트가 있으면 (힌트 + 5)초, 없으면 기본값(25초)을 반환합니다.
func retryWait(errMsg string) time.Duration {
	if m := retryHintPattern.FindStringSubmatch(errMsg); m != nil {
		if seconds, err := strconv.Atoi(m[1]); err == nil {
			return time.Duration(seconds+5) * time.Second
		}
	}
	return defaultRetryWait
}

// limitToCrawlEvidence 크롤링 근거가 있는 항목만 남깁니다.
// booking_url이 크롤링 데이터와 매칭되는 항목을 우선 유지하고,
// 매칭되는 항목이 하나도 없으면 크롤링 항목 수만큼 앞에서 잘라냅니다.
func limitToCrawlEvidence(results []RefinedConcert, rawData []crawler.RawConcertData) []RefinedConcert {
	crawledURLs := make(map[string]struct{}, len(rawData))
	for _, d := range rawData {
		if d.BookingURL != "" {
			crawledURLs[d.BookingURL] = struct{}{}
		}
	}

	matched := make([]RefinedConcert, 0, len(rawData))
	for _, r := range results {
		if _, ok := crawledURLs[r.BookingURL]; ok {
			matched = append(matched, r)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	return results[:len(rawData)]
}
