package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yes24Fixture = `
<html><body>
<div class="srch-list-item" style="display: none;">
  <div><p class="item-tit"><a href="/perf/00000">템플릿 행</a></p></div>
</div>
<div class="srch-list-item">
  <div><a href="/perf/48001"><img src="poster.jpg"></a></div>
  <div><p class="item-tit"><a href="/perf/48001">2026 검정치마
    단독 콘서트</a></p></div>
  <div>2026.09.12~2026.09.13</div>
  <div>YES24 LIVEHALL</div>
</div>
<div class="srch-list-item">
  <div><p class="item-tit"><a href="https://ticket.yes24.com/perf/48002">검정치마 앵콜</a></p></div>
  <div>2026.11.07</div>
</div>
</body></html>`

func TestParseYes24Document(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(yes24Fixture))
	require.NoError(t, err)

	results := parseYes24Document(doc, "검정치마")
	require.Len(t, results, 2)

	first := results[0]
	// 여러 줄에 걸친 제목은 공백 하나로 정규화된다.
	assert.Equal(t, "2026 검정치마 단독 콘서트", first.Title)
	assert.Equal(t, "검정치마", first.ArtistName)
	assert.Equal(t, "2026.09.12~2026.09.13", first.Date)
	assert.Equal(t, "YES24 LIVEHALL", first.Venue)
	assert.Equal(t, "https://ticket.yes24.com/perf/48001", first.BookingURL)
	assert.Equal(t, "yes24", first.SourceSite)

	second := results[1]
	assert.Equal(t, "검정치마 앵콜", second.Title)
	assert.Equal(t, "2026.11.07", second.Date)
	assert.Empty(t, second.Venue)
	assert.Equal(t, "https://ticket.yes24.com/perf/48002", second.BookingURL)
}

func TestParseYes24Document_SkipsHiddenTemplateRows(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(yes24Fixture))
	require.NoError(t, err)

	for _, result := range parseYes24Document(doc, "검정치마") {
		assert.NotEqual(t, "템플릿 행", result.Title)
	}
}

func TestParseYes24Document_EmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body></body></html>`))
	require.NoError(t, err)

	assert.Empty(t, parseYes24Document(doc, "검정치마"))
}
