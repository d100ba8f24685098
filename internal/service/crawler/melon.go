package crawler

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
)

const (
	melonSiteName  = "melon"
	melonSearchURL = "https://ticket.melon.com/search/index.htm"
	melonBaseURL   = "https://ticket.melon.com"
)

// 멜론티켓 검색 결과 페이지의 CSS 셀렉터
const (
	selectorMelonItem         = ".list_ticket li, .search_list li, .result_list li"
	selectorMelonItemFallback = "[class*='concert'], [class*='ticket'], [class*='product']"
	selectorMelonTitle        = ".tit a, .title a, a.name, h4 a, a[class*='tit']"
	selectorMelonVenue        = ".venue, .place, [class*='venue'], [class*='place']"
	selectorMelonDate         = ".date, .period, [class*='date'], [class*='period']"
	selectorMelonPrice        = ".price, [class*='price']"
)

// MelonCrawler 멜론티켓 검색 크롤러입니다.
type MelonCrawler struct {
	fetcher Fetcher
}

var _ Crawler = (*MelonCrawler)(nil)

// NewMelonCrawler 멜론티켓 크롤러를 생성합니다.
func NewMelonCrawler(fetcher Fetcher) *MelonCrawler {
	return &MelonCrawler{fetcher: fetcher}
}

func (c *MelonCrawler) SiteName() string {
	return melonSiteName
}

// Search 멜론티켓에서 가수의 콘서트를 검색합니다.
// 검색 정확도를 높이기 위해 가수 이름 뒤에 "콘서트"를 붙여 검색합니다.
func (c *MelonCrawler) Search(ctx context.Context, artistName string) ([]RawConcertData, error) {
	searchURL := melonSearchURL + "?q=" + url.QueryEscape(artistName+" 콘서트")

	doc, err := c.fetcher.Fetch(ctx, searchURL, nil)
	if err != nil {
		return nil, err
	}

	results := parseMelonDocument(doc, artistName)

	applog.WithComponentAndFields(component, applog.Fields{
		"site":   melonSiteName,
		"artist": artistName,
		"count":  len(results),
	}).Info("크롤링 결과 수집 완료")

	return results, nil
}

// parseMelonDocument 검색 결과 문서에서 콘서트 정보를 추출합니다.
// 기본 셀렉터로 항목을 찾지 못하면 대체 셀렉터로 한 번 더 시도합니다.
func parseMelonDocument(doc *goquery.Document, artistName string) []RawConcertData {
	results := parseMelonItems(doc.Find(selectorMelonItem), artistName)
	if len(results) == 0 {
		results = parseMelonItems(doc.Find(selectorMelonItemFallback), artistName)
	}
	return results
}

func parseMelonItems(items *goquery.Selection, artistName string) []RawConcertData {
	results := make([]RawConcertData, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		titleEl := s.Find(selectorMelonTitle).First()
		title := strings.TrimSpace(titleEl.Text())
		if title == "" {
			return
		}

		bookingURL := titleEl.AttrOr("href", "")
		if bookingURL != "" && !strings.HasPrefix(bookingURL, "http") {
			bookingURL = melonBaseURL + bookingURL
		}

		results = append(results, RawConcertData{
			Title:      title,
			ArtistName: artistName,
			Venue:      strings.TrimSpace(s.Find(selectorMelonVenue).First().Text()),
			Date:       strings.TrimSpace(s.Find(selectorMelonDate).First().Text()),
			Price:      strings.TrimSpace(s.Find(selectorMelonPrice).First().Text()),
			BookingURL: bookingURL,
			SourceSite: melonSiteName,
		})
	})
	return results
}
