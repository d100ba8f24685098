package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	t.Run("일반 JSON 배열", func(t *testing.T) {
		text := `[
  {
    "concert_title": "2026 아이유 단독 콘서트",
    "venue": "KSPO DOME",
    "concert_date": "2026-12-25",
    "concert_time": "18:00",
    "ticket_price": "VIP 198,000원 / R석 165,000원",
    "booking_date": "2026-11-01",
    "booking_url": "https://tickets.interpark.com/goods/24001234",
    "source": "crawl+ai",
    "confidence": 0.85,
    "data_sources": "interpark",
    "is_verified": true
  }
]`

		results, err := parseResponse(text)
		require.NoError(t, err)
		require.Len(t, results, 1)

		r := results[0]
		assert.Equal(t, "2026 아이유 단독 콘서트", r.ConcertTitle)
		assert.Equal(t, "KSPO DOME", r.Venue)
		assert.Equal(t, "2026-12-25", r.ConcertDate)
		assert.Equal(t, "18:00", r.ConcertTime)
		assert.Equal(t, "VIP 198,000원 / R석 165,000원", r.TicketPrice)
		assert.Equal(t, "2026-11-01", r.BookingDate)
		assert.Equal(t, "https://tickets.interpark.com/goods/24001234", r.BookingURL)
		assert.Equal(t, "crawl+ai", r.Source)
		assert.InDelta(t, 0.85, r.Confidence, 0.001)
		assert.Equal(t, "interpark", r.DataSources)
		assert.True(t, r.IsVerified)
		assert.NotEmpty(t, r.Raw)
	})

	t.Run("json 코드 펜스 제거", func(t *testing.T) {
		text := "분석 결과입니다.\n```json\n[{\"concert_title\": \"콘서트\"}]\n```"

		results, err := parseResponse(text)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "콘서트", results[0].ConcertTitle)
	})

	t.Run("일반 코드 펜스 제거", func(t *testing.T) {
		text := "```\n[{\"concert_title\": \"콘서트\"}]\n```"

		results, err := parseResponse(text)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "콘서트", results[0].ConcertTitle)
	})

	t.Run("단일 객체는 1건짜리 목록으로 취급", func(t *testing.T) {
		results, err := parseResponse(`{"concert_title": "콘서트", "confidence": 0.5}`)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 0.5, results[0].Confidence, 0.001)
	})

	t.Run("null 필드는 제로값으로 처리", func(t *testing.T) {
		results, err := parseResponse(`[{"concert_title": "콘서트", "concert_time": null, "ticket_price": null}]`)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Empty(t, results[0].ConcertTime)
		assert.Empty(t, results[0].TicketPrice)
	})

	t.Run("빈 배열", func(t *testing.T) {
		results, err := parseResponse(`[]`)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("유효하지 않은 JSON은 에러", func(t *testing.T) {
		_, err := parseResponse("죄송합니다. 검색 결과를 찾을 수 없습니다.")
		assert.Error(t, err)
	})
}
