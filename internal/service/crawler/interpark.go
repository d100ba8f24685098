package crawler

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
)

const (
	interparkSiteName  = "interpark"
	interparkSearchURL = "https://tickets.interpark.com/contents/search"
	interparkGoodsURL  = "https://tickets.interpark.com/goods/"
)

// 인터파크 티켓 검색 결과 페이지의 CSS 셀렉터
// 클래스 이름에 빌드 해시가 붙으므로 부분 일치로 매칭한다.
const (
	selectorInterparkItem  = "a[class*='TicketItem_ticketItem']"
	selectorInterparkTitle = "[class*='TicketItem_goodsName']"
	selectorInterparkPlace = "[class*='TicketItem_placeName']"
	selectorInterparkDate  = "[class*='TicketItem_playDate']"
)

// InterparkCrawler 인터파크 티켓 검색 크롤러입니다.
type InterparkCrawler struct {
	fetcher Fetcher
}

var _ Crawler = (*InterparkCrawler)(nil)

// NewInterparkCrawler 인터파크 티켓 크롤러를 생성합니다.
func NewInterparkCrawler(fetcher Fetcher) *InterparkCrawler {
	return &InterparkCrawler{fetcher: fetcher}
}

func (c *InterparkCrawler) SiteName() string {
	return interparkSiteName
}

// Search 인터파크 티켓에서 가수의 콘서트를 검색합니다.
func (c *InterparkCrawler) Search(ctx context.Context, artistName string) ([]RawConcertData, error) {
	searchURL := interparkSearchURL + "?keyword=" + url.QueryEscape(artistName)

	doc, err := c.fetcher.Fetch(ctx, searchURL, nil)
	if err != nil {
		return nil, err
	}

	results := parseInterparkDocument(doc, artistName)

	applog.WithComponentAndFields(component, applog.Fields{
		"site":   interparkSiteName,
		"artist": artistName,
		"count":  len(results),
	}).Info("크롤링 결과 수집 완료")

	return results, nil
}

// parseInterparkDocument 검색 결과 문서에서 콘서트 정보를 추출합니다.
func parseInterparkDocument(doc *goquery.Document, artistName string) []RawConcertData {
	items := doc.Find(selectorInterparkItem)

	results := make([]RawConcertData, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		// 제목: data-prd-name 속성 우선, 없으면 상품명 요소의 텍스트
		title := s.AttrOr("data-prd-name", "")
		if title == "" {
			title = strings.TrimSpace(s.Find(selectorInterparkTitle).First().Text())
		}
		if title == "" {
			return
		}

		// 예매 링크: data-prd-no 속성으로 상품 페이지 URL 생성
		var bookingURL string
		if prdNo := s.AttrOr("data-prd-no", ""); prdNo != "" {
			bookingURL = interparkGoodsURL + prdNo
		}

		results = append(results, RawConcertData{
			Title:      title,
			ArtistName: artistName,
			Venue:      strings.TrimSpace(s.Find(selectorInterparkPlace).First().Text()),
			Date:       strings.TrimSpace(s.Find(selectorInterparkDate).First().Text()),
			BookingURL: bookingURL,
			SourceSite: interparkSiteName,
		})
	})

	return results
}
