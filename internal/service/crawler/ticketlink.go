package crawler

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
)

const (
	ticketlinkSiteName  = "ticketlink"
	ticketlinkSearchURL = "https://www.ticketlink.co.kr/search"
	ticketlinkBaseURL   = "https://www.ticketlink.co.kr"
)

// 티켓링크 검색 결과 페이지의 CSS 셀렉터
const (
	selectorTicketlinkItem         = ".search_result li, .list_product li, .result_list li"
	selectorTicketlinkItemFallback = "[class*='product'], [class*='ticket'], [class*='show']"
	selectorTicketlinkTitle        = ".tit a, .title a, a.name, h4 a, a[class*='tit']"
	selectorTicketlinkVenue        = ".venue, .place, [class*='venue'], [class*='place']"
	selectorTicketlinkDate         = ".date, .period, [class*='date'], [class*='period']"
	selectorTicketlinkPrice        = ".price, [class*='price']"
)

// TicketlinkCrawler 티켓링크 검색 크롤러입니다.
type TicketlinkCrawler struct {
	fetcher Fetcher
}

var _ Crawler = (*TicketlinkCrawler)(nil)

// NewTicketlinkCrawler 티켓링크 크롤러를 생성합니다.
func NewTicketlinkCrawler(fetcher Fetcher) *TicketlinkCrawler {
	return &TicketlinkCrawler{fetcher: fetcher}
}

func (c *TicketlinkCrawler) SiteName() string {
	return ticketlinkSiteName
}

// Search 티켓링크에서 가수의 콘서트를 검색합니다.
func (c *TicketlinkCrawler) Search(ctx context.Context, artistName string) ([]RawConcertData, error) {
	searchURL := ticketlinkSearchURL + "?query=" + url.QueryEscape(artistName)

	doc, err := c.fetcher.Fetch(ctx, searchURL, nil)
	if err != nil {
		return nil, err
	}

	results := parseTicketlinkDocument(doc, artistName)

	applog.WithComponentAndFields(component, applog.Fields{
		"site":   ticketlinkSiteName,
		"artist": artistName,
		"count":  len(results),
	}).Info("크롤링 결과 수집 완료")

	return results, nil
}

// parseTicketlinkDocument 검색 결과 문서에서 콘서트 정보를 추출합니다.
// 기본 셀렉터로 항목을 찾지 못하면 대체 셀렉터로 한 번 더 시도합니다.
func parseTicketlinkDocument(doc *goquery.Document, artistName string) []RawConcertData {
	results := parseTicketlinkItems(doc.Find(selectorTicketlinkItem), artistName)
	if len(results) == 0 {
		results = parseTicketlinkItems(doc.Find(selectorTicketlinkItemFallback), artistName)
	}
	return results
}

func parseTicketlinkItems(items *goquery.Selection, artistName string) []RawConcertData {
	results := make([]RawConcertData, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		titleEl := s.Find(selectorTicketlinkTitle).First()
		title := strings.TrimSpace(titleEl.Text())
		if title == "" {
			return
		}

		bookingURL := titleEl.AttrOr("href", "")
		if bookingURL != "" && !strings.HasPrefix(bookingURL, "http") {
			bookingURL = ticketlinkBaseURL + bookingURL
		}

		results = append(results, RawConcertData{
			Title:      title,
			ArtistName: artistName,
			Venue:      strings.TrimSpace(s.Find(selectorTicketlinkVenue).First().Text()),
			Date:       strings.TrimSpace(s.Find(selectorTicketlinkDate).First().Text()),
			Price:      strings.TrimSpace(s.Find(selectorTicketlinkPrice).First().Text()),
			BookingURL: bookingURL,
			SourceSite: ticketlinkSiteName,
		})
	})
	return results
}
