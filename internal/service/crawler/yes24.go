package crawler

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
)

const (
	yes24SiteName  = "yes24"
	yes24SearchURL = "https://ticket.yes24.com/search"
	yes24BaseURL   = "https://ticket.yes24.com"
)

// Yes24 검색 결과 페이지의 CSS 셀렉터
const (
	selectorYes24Item  = ".srch-list-item"
	selectorYes24Title = ".item-tit a"
)

// yes24DatePattern 날짜 전용 div 판별용 패턴 (예: 2026.03.28, 2026.03.28~2026.03.29)
var yes24DatePattern = regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}`)

// yes24Headers Yes24는 브라우저와 동일한 헤더 구성을 요구하므로
// 기본 헤더 대신 전체 헤더 집합을 사용합니다.
//
// Accept-Encoding은 지정하지 않습니다. 직접 지정하면 Go HTTP 클라이언트의
// 자동 압축 해제가 비활성화되어 압축된 응답 본문이 그대로 파서에 전달됩니다.
// 압축 협상과 해제는 전송 계층에 맡깁니다.
var yes24Headers = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/145.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
	"Referer":                   "https://ticket.yes24.com/",
	"Sec-Ch-Ua":                 `"Not:A-Brand";v="99", "Google Chrome";v="145", "Chromium";v="145"`,
	"Sec-Ch-Ua-Mobile":          "?0",
	"Sec-Ch-Ua-Platform":        `"Windows"`,
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "same-origin",
	"Sec-Fetch-User":            "?1",
	"Upgrade-Insecure-Requests": "1",
	"Cache-Control":             "max-age=0",
	"Connection":                "keep-alive",
}

// Yes24Crawler Yes24 티켓 검색 크롤러입니다.
type Yes24Crawler struct {
	fetcher Fetcher
}

var _ Crawler = (*Yes24Crawler)(nil)

// NewYes24Crawler Yes24 티켓 크롤러를 생성합니다.
func NewYes24Crawler(fetcher Fetcher) *Yes24Crawler {
	return &Yes24Crawler{fetcher: fetcher}
}

func (c *Yes24Crawler) SiteName() string {
	return yes24SiteName
}

// Search Yes24에서 가수의 콘서트를 검색합니다.
func (c *Yes24Crawler) Search(ctx context.Context, artistName string) ([]RawConcertData, error) {
	searchURL := yes24SearchURL + "/" + url.PathEscape(artistName)

	doc, err := c.fetcher.Fetch(ctx, searchURL, yes24Headers)
	if err != nil {
		return nil, err
	}

	results := parseYes24Document(doc, artistName)

	applog.WithComponentAndFields(component, applog.Fields{
		"site":   yes24SiteName,
		"artist": artistName,
		"count":  len(results),
	}).Info("크롤링 결과 수집 완료")

	return results, nil
}

// parseYes24Document 검색 결과 문서에서 콘서트 정보를 추출합니다.
//
// Yes24 검색 결과 구조:
//
//	div.srch-list-item            (style에 display:none이면 템플릿 행이므로 제외)
//	  div > a > img               (포스터)
//	  div > p.item-tit > a        (제목 + 링크)
//	  div                         (날짜, 클래스 없는 텍스트 전용 div)
//	  div                         (장소, 클래스 없는 텍스트 전용 div)
func parseYes24Document(doc *goquery.Document, artistName string) []RawConcertData {
	items := doc.Find(selectorYes24Item)

	results := make([]RawConcertData, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		// display:none 템플릿 행 제외
		style := strings.ReplaceAll(s.AttrOr("style", ""), " ", "")
		if strings.Contains(style, "display:none") {
			return
		}

		titleEl := s.Find(selectorYes24Title).First()
		title := strings.Join(strings.Fields(titleEl.Text()), " ")
		if title == "" {
			return
		}

		bookingURL := titleEl.AttrOr("href", "")
		if bookingURL != "" && !strings.HasPrefix(bookingURL, "http") {
			bookingURL = yes24BaseURL + bookingURL
		}

		date, venue := parseYes24DateVenue(s)

		results = append(results, RawConcertData{
			Title:      title,
			ArtistName: artistName,
			Venue:      venue,
			Date:       date,
			BookingURL: bookingURL,
			SourceSite: yes24SiteName,
		})
	})

	return results
}

// parseYes24DateVenue 항목의 직계 자식 div 중 자식 요소 없이 텍스트만 가진 div에서
// 날짜와 장소를 추출합니다. 날짜 패턴과 일치하면 날짜, 아니면 장소로 판단합니다.
func parseYes24DateVenue(item *goquery.Selection) (date, venue string) {
	item.ChildrenFiltered("div").Each(func(_ int, div *goquery.Selection) {
		// 자식 요소(p, a, img 등)가 있는 div는 건너뜀
		if div.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(div.Text())
		if text == "" {
			return
		}
		if yes24DatePattern.MatchString(text) {
			date = text
		} else {
			venue = text
		}
	})
	return date, venue
}
