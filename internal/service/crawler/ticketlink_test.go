package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ticketlinkFixture = `
<html><body>
<ul class="search_result">
  <li>
    <div class="tit"><a href="/product/54321">2026 김동률 콘서트</a></div>
    <span class="place">예술의전당</span>
    <span class="period">2026.10.03 ~ 2026.10.05</span>
    <span class="price">143,000원</span>
  </li>
  <li>
    <div class="poster"></div>
  </li>
</ul>
</body></html>`

func TestParseTicketlinkDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ticketlinkFixture))
	require.NoError(t, err)

	results := parseTicketlinkDocument(doc, "김동률")
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, "2026 김동률 콘서트", result.Title)
	assert.Equal(t, "김동률", result.ArtistName)
	assert.Equal(t, "예술의전당", result.Venue)
	assert.Equal(t, "2026.10.03 ~ 2026.10.05", result.Date)
	assert.Equal(t, "143,000원", result.Price)
	assert.Equal(t, "https://www.ticketlink.co.kr/product/54321", result.BookingURL)
	assert.Equal(t, "ticketlink", result.SourceSite)
}

func TestParseTicketlinkDocument_FallbackSelector(t *testing.T) {
	fixture := `
<html><body>
<div class="product-item">
  <h4><a href="/product/54399">김동률 앵콜 공연</a></h4>
  <span class="venue">블루스퀘어</span>
</div>
</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)

	results := parseTicketlinkDocument(doc, "김동률")
	require.Len(t, results, 1)
	assert.Equal(t, "김동률 앵콜 공연", results[0].Title)
	assert.Equal(t, "블루스퀘어", results[0].Venue)
}

func TestParseTicketlinkDocument_EmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body></body></html>`))
	require.NoError(t, err)

	assert.Empty(t, parseTicketlinkDocument(doc, "김동률"))
}
