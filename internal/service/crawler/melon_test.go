package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const melonFixture = `
<html><body>
<ul class="list_ticket">
  <li>
    <div class="tit"><a href="/performance/index.htm?prodId=210001">2026 성시경 연말 콘서트</a></div>
    <span class="place">세종문화회관</span>
    <span class="period">2026.12.30 ~ 2026.12.31</span>
    <span class="price">154,000원</span>
  </li>
  <li>
    <div class="tit"><a href="https://ticket.melon.com/performance/index.htm?prodId=210002">성시경 소극장 공연</a></div>
  </li>
  <li>
    <span class="place">제목 없는 항목</span>
  </li>
</ul>
</body></html>`

const melonFallbackFixture = `
<html><body>
<div class="concert-card">
  <h4><a href="/performance/index.htm?prodId=210003">성시경 전국투어</a></h4>
  <span class="venue">부산 KBS홀</span>
  <span class="date">2026.11.14</span>
</div>
</body></html>`

func TestParseMelonDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(melonFixture))
	require.NoError(t, err)

	results := parseMelonDocument(doc, "성시경")
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "2026 성시경 연말 콘서트", first.Title)
	assert.Equal(t, "성시경", first.ArtistName)
	assert.Equal(t, "세종문화회관", first.Venue)
	assert.Equal(t, "2026.12.30 ~ 2026.12.31", first.Date)
	assert.Equal(t, "154,000원", first.Price)
	assert.Equal(t, "https://ticket.melon.com/performance/index.htm?prodId=210001", first.BookingURL)
	assert.Equal(t, "melon", first.SourceSite)

	// 절대 URL은 그대로 사용한다.
	assert.Equal(t, "https://ticket.melon.com/performance/index.htm?prodId=210002", results[1].BookingURL)
}

func TestParseMelonDocument_FallbackSelector(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(melonFallbackFixture))
	require.NoError(t, err)

	results := parseMelonDocument(doc, "성시경")
	require.Len(t, results, 1)
	assert.Equal(t, "성시경 전국투어", results[0].Title)
	assert.Equal(t, "부산 KBS홀", results[0].Venue)
	assert.Equal(t, "2026.11.14", results[0].Date)
}

func TestParseMelonDocument_EmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body></body></html>`))
	require.NoError(t, err)

	assert.Empty(t, parseMelonDocument(doc, "성시경"))
}
