package crawler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	"golang.org/x/net/html/charset"
)

const (
	// fetchTimeout 단일 HTTP 요청의 타임아웃입니다.
	fetchTimeout = 15 * time.Second

	// maxFetchAttempts 재시도를 포함한 최대 요청 횟수입니다.
	maxFetchAttempts = 3

	minFetchBackoff = 2 * time.Second
	maxFetchBackoff = 10 * time.Second
)

// defaultHeaders 모든 사이트 요청에 기본으로 적용되는 헤더입니다.
// 사이트별 크롤러가 전달한 헤더가 같은 키를 가지면 그 값이 우선합니다.
var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/131.0.0.0 Safari/537.36",
	"Accept-Language": "ko-KR,ko;q=0.9",
}

// Fetcher HTML 페이지를 가져와 goquery 문서로 파싱하는 인터페이스입니다.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (*goquery.Document, error)
}

// HTTPFetcher 재시도와 인코딩 변환 기능이 내장된 Fetcher 구현체입니다.
//
// 서버 오류(5xx)와 네트워크 오류에 한해 지수 백오프(2초~10초)로
// 최대 3회까지 요청하며, 클라이언트 오류(4xx)는 재시도하지 않습니다.
type HTTPFetcher struct {
	client *http.Client

	// backoffFn 재시도 대기 시간을 계산합니다. 테스트에서 대체됩니다.
	backoffFn func(attempt int) time.Duration
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 기본 타임아웃(15초) 설정이 포함된 새로운 HTTPFetcher 인스턴스를 생성합니다.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: fetchTimeout,
		},
		backoffFn: fetchBackoff,
	}
}

// Fetch 지정된 URL로 HTTP 요청을 보내 HTML 문서를 가져오고, goquery.Document로 파싱합니다.
// 응답 헤더의 Content-Type을 분석하여, 비 UTF-8 인코딩(예: EUC-KR) 페이지도
// 자동으로 UTF-8로 변환하여 처리합니다.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		doc, retryable, err := f.fetchOnce(ctx, url, headers)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if !retryable || attempt == maxFetchAttempts {
			break
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"url":     url,
			"attempt": attempt,
		}).WithError(err).Warn("페이지 요청 실패, 잠시 후 재시도합니다")

		select {
		case <-ctx.Done():
			return nil, apperrors.Wrap(ctx.Err(), apperrors.Timeout, "페이지 요청이 취소되었습니다")
		case <-time.After(f.backoffFn(attempt)):
		}
	}

	return nil, lastErr
}

// fetchOnce 단일 요청을 수행합니다. 두 번째 반환값은 재시도 가능 여부입니다.
func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string, headers map[string]string) (*goquery.Document, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.Internal, fmt.Sprintf("페이지(%s) 요청 생성에 실패했습니다", url))
	}

	for key, value := range defaultHeaders {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("페이지(%s) 요청 중 네트워크 에러가 발생했습니다", url))
	}
	defer resp.Body.Close() // 응답을 받은 즉시 defer 설정하여 메모리 누수 방지

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= http.StatusInternalServerError
		return nil, retryable, apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("페이지(%s) 요청이 실패했습니다. 상태 코드: %s", url, resp.Status))
	}

	// Content-Type 헤더를 기반으로 인코딩을 UTF-8로 변환
	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("페이지(%s)의 인코딩 변환이 실패하였습니다", url))
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("불러온 페이지(%s)의 데이터 파싱이 실패하였습니다", url))
	}

	return doc, false, nil
}

// fetchBackoff attempt회차 실패 후의 대기 시간을 반환합니다. (2초, 4초, ...)
func fetchBackoff(attempt int) time.Duration {
	d := time.Second << attempt
	if d < minFetchBackoff {
		return minFetchBackoff
	}
	if d > maxFetchBackoff {
		return maxFetchBackoff
	}
	return d
}
