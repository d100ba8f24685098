package crawler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testToday 필터 테스트의 기준일
var testToday = time.Date(2026, 8, 24, 15, 30, 0, 0, time.Local)

func TestFilter_DateRangeExpansion(t *testing.T) {
	items := []RawConcertData{
		{
			Title:      "아이유 콘서트",
			ArtistName: "아이유",
			Venue:      "올림픽공원",
			Date:       "2026.9.1 ~ 2026.10.2",
			Price:      "132,000원",
			BookingURL: "https://tickets.interpark.com/goods/100",
			SourceSite: "interpark",
		},
	}

	filtered := filterAt(items, testToday)
	require.Len(t, filtered, 2)

	assert.Equal(t, "2026.09.01", filtered[0].Date)
	assert.Equal(t, "2026.10.02", filtered[1].Date)

	// 날짜를 제외한 나머지 필드는 원본 그대로 유지되어야 한다.
	for _, item := range filtered {
		assert.Equal(t, "아이유 콘서트", item.Title)
		assert.Equal(t, "아이유", item.ArtistName)
		assert.Equal(t, "올림픽공원", item.Venue)
		assert.Equal(t, "132,000원", item.Price)
		assert.Equal(t, "https://tickets.interpark.com/goods/100", item.BookingURL)
		assert.Equal(t, "interpark", item.SourceSite)
	}
}

func TestFilter_SingleDatePassesUnchanged(t *testing.T) {
	items := []RawConcertData{
		{Title: "단독 콘서트", Date: "2026.12.25"},
	}

	filtered := filterAt(items, testToday)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2026.12.25", filtered[0].Date)
}

func TestFilter_NonConcertExclusion(t *testing.T) {
	tests := []struct {
		name  string
		title string
		kept  bool
	}{
		{"뮤지컬 제외", "뮤지컬 프랑켄슈타인", false},
		{"연극 제외", "연극 옥탑방 고양이", false},
		{"전시 제외", "반 고흐 전시", false},
		{"클래식 제외", "신년 클래식 갈라", false},
		{"어린이 공연 제외", "어린이 인형극", false},
		{"콘서트 통과", "2026 아이유 단독 콘서트", true},
		{"팬미팅 통과", "아이유 팬미팅", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := filterAt([]RawConcertData{{Title: tt.title, Date: "2026.12.25"}}, testToday)
			if tt.kept {
				assert.Len(t, filtered, 1)
			} else {
				assert.Empty(t, filtered)
			}
		})
	}
}

func TestFilter_PastEventExclusion(t *testing.T) {
	tests := []struct {
		name string
		date string
		kept bool
	}{
		{"지난 공연 제외", "2020.01.01", false},
		{"어제 공연 제외", "2026.08.23", false},
		{"오늘 공연 통과", "2026.08.24", true},
		{"미래 공연 통과", "2026.12.25", true},
		{"종료일 기준 판정: 기간이 지났으면 제외", "2026.01.10 ~ 2026.02.15", false},
		{"날짜 없음 통과", "", true},
		{"해석 불가 날짜 통과", "상시공연", true},
		{"달력에 없는 날짜는 해석 불가로 통과", "2026.02.31", true},
		{"지난 날짜처럼 보여도 달력에 없으면 통과", "2025.11.31", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := filterAt([]RawConcertData{{Title: "콘서트", Date: tt.date}}, testToday)
			if tt.kept {
				assert.NotEmpty(t, filtered)
			} else {
				assert.Empty(t, filtered)
			}
		})
	}
}

func TestFilter_RangeExpansionThenPastExclusion(t *testing.T) {
	// 기간이 오늘을 걸쳐 있으면 지난 날짜의 복사본만 제외된다.
	items := []RawConcertData{
		{Title: "콘서트", Date: "2026.08.23 ~ 2026.08.25"},
	}

	filtered := filterAt(items, testToday)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2026.08.25", filtered[0].Date)
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, filterAt(nil, testToday))
	assert.Empty(t, filterAt([]RawConcertData{}, testToday))
}
