package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const interparkFixture = `
<html><body>
<a class="TicketItem_ticketItem__a1b2c" data-prd-name="2026 아이유 단독 콘서트" data-prd-no="24001234">
  <span class="TicketItem_goodsName__x1">2026 아이유 단독 콘서트</span>
  <span class="TicketItem_placeName__x2">KSPO DOME</span>
  <span class="TicketItem_playDate__x3">2026.12.25 ~ 2026.12.27</span>
</a>
<a class="TicketItem_ticketItem__a1b2c">
  <span class="TicketItem_goodsName__x1">아이유 팬콘서트</span>
  <span class="TicketItem_placeName__x2">올림픽홀</span>
</a>
<a class="TicketItem_ticketItem__a1b2c">
  <span class="TicketItem_posterImage__x9"></span>
</a>
</body></html>`

func TestParseInterparkDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(interparkFixture))
	require.NoError(t, err)

	results := parseInterparkDocument(doc, "아이유")
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "2026 아이유 단독 콘서트", first.Title)
	assert.Equal(t, "아이유", first.ArtistName)
	assert.Equal(t, "KSPO DOME", first.Venue)
	assert.Equal(t, "2026.12.25 ~ 2026.12.27", first.Date)
	assert.Equal(t, "https://tickets.interpark.com/goods/24001234", first.BookingURL)
	assert.Equal(t, "interpark", first.SourceSite)

	// data-prd-name 속성이 없으면 상품명 요소의 텍스트를 사용하고,
	// data-prd-no가 없으면 예매 링크는 비워 둔다.
	second := results[1]
	assert.Equal(t, "아이유 팬콘서트", second.Title)
	assert.Equal(t, "올림픽홀", second.Venue)
	assert.Empty(t, second.BookingURL)
}

func TestParseInterparkDocument_EmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>검색 결과가 없습니다</p></body></html>`))
	require.NoError(t, err)

	assert.Empty(t, parseInterparkDocument(doc, "아이유"))
}
