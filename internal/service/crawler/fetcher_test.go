package crawler

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// newTestFetcher 재시도 대기 시간을 제거한 테스트용 HTTPFetcher를 생성합니다.
func newTestFetcher() *HTTPFetcher {
	f := NewHTTPFetcher()
	f.backoffFn = func(int) time.Duration { return 0 }
	return f
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("기본 헤더 적용 및 파싱 성공", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("User-Agent"), "Chrome/131")
			assert.Equal(t, "ko-KR,ko;q=0.9", r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><h1>검색 결과</h1></body></html>`))
		}))
		defer ts.Close()

		doc, err := newTestFetcher().Fetch(context.Background(), ts.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, "검색 결과", doc.Find("h1").Text())
	})

	t.Run("사이트별 헤더가 기본 헤더보다 우선", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("User-Agent"), "Chrome/145")
			assert.Equal(t, "https://ticket.yes24.com/", r.Header.Get("Referer"))
			_, _ = w.Write([]byte(`<html></html>`))
		}))
		defer ts.Close()

		headers := map[string]string{
			"User-Agent": "Mozilla/5.0 Chrome/145.0.0.0",
			"Referer":    "https://ticket.yes24.com/",
		}
		_, err := newTestFetcher().Fetch(context.Background(), ts.URL, headers)
		require.NoError(t, err)
	})

	t.Run("EUC-KR 페이지 인코딩 변환", func(t *testing.T) {
		var buf bytes.Buffer
		writer := transform.NewWriter(&buf, korean.EUCKR.NewEncoder())
		_, err := writer.Write([]byte(`<html><body><p>한글 페이지</p></body></html>`))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=euc-kr")
			_, _ = w.Write(buf.Bytes())
		}))
		defer ts.Close()

		doc, err := newTestFetcher().Fetch(context.Background(), ts.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, "한글 페이지", doc.Find("p").Text())
	})

	t.Run("gzip 압축 응답 자동 해제", func(t *testing.T) {
		// 클라이언트가 gzip을 광고하면 압축해서 응답하는 서버.
		// 전송 계층이 압축을 협상·해제하므로 파서는 항상 평문을 받아야 한다.
		page := `<html><body>
			<div class="srch-list-item">
				<p class="item-tit"><a href="/perf/55555">2026 아이유 단독 콘서트</a></p>
				<div>2026.12.25</div>
				<div>올림픽공원 체조경기장</div>
			</div>
		</body></html>`

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")

			var buf bytes.Buffer
			gz := gzip.NewWriter(&buf)
			_, err := gz.Write([]byte(page))
			assert.NoError(t, err)
			assert.NoError(t, gz.Close())

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(buf.Bytes())
		}))
		defer ts.Close()

		// Yes24의 전체 헤더 집합을 사용해도 압축 해제가 동작해야 한다.
		doc, err := newTestFetcher().Fetch(context.Background(), ts.URL, yes24Headers)
		require.NoError(t, err)

		results := parseYes24Document(doc, "아이유")
		require.Len(t, results, 1)
		assert.Equal(t, "2026 아이유 단독 콘서트", results[0].Title)
		assert.Equal(t, "2026.12.25", results[0].Date)
	})

	t.Run("서버 오류는 재시도 후 성공", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
		}))
		defer ts.Close()

		_, err := newTestFetcher().Fetch(context.Background(), ts.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("서버 오류는 최대 횟수까지만 재시도", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		_, err := newTestFetcher().Fetch(context.Background(), ts.URL, nil)
		assert.Error(t, err)
		assert.Equal(t, int32(maxFetchAttempts), calls.Load())
	})

	t.Run("클라이언트 오류는 재시도하지 않음", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		_, err := newTestFetcher().Fetch(context.Background(), ts.URL, nil)
		assert.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestFetchBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, fetchBackoff(1))
	assert.Equal(t, 4*time.Second, fetchBackoff(2))
	assert.Equal(t, 8*time.Second, fetchBackoff(3))
	assert.Equal(t, 10*time.Second, fetchBackoff(4))
}
