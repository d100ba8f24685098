package crawler

import (
	"context"
	"sync"

	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
)

// Orchestrator 등록된 크롤러들을 병렬로 실행하고 결과를 취합합니다.
//
// 개별 크롤러의 실패(에러, 패닉)는 로깅 후 빈 결과로 처리되므로
// 한 사이트의 장애가 전체 수집을 중단시키지 않습니다.
type Orchestrator struct {
	crawlers []Crawler
}

// NewOrchestrator 전달된 크롤러들로 오케스트레이터를 생성합니다.
// 결과는 크롤러 등록 순서대로 이어 붙여집니다.
func NewOrchestrator(crawlers ...Crawler) *Orchestrator {
	return &Orchestrator{crawlers: crawlers}
}

// NewDefaultOrchestrator 지원하는 모든 티켓 사이트의 크롤러를 등록한
// 오케스트레이터를 생성합니다. HTTP 클라이언트는 크롤러 간에 공유됩니다.
func NewDefaultOrchestrator() *Orchestrator {
	fetcher := NewHTTPFetcher()
	return NewOrchestrator(
		NewInterparkCrawler(fetcher),
		NewMelonCrawler(fetcher),
		NewTicketlinkCrawler(fetcher),
		NewYes24Crawler(fetcher),
	)
}

// CrawlAll 모든 크롤러로 동시 검색한 뒤, 취합된 결과에 필터를 적용하여 반환합니다.
// 이 호출 자체는 실패하지 않으며, 모든 크롤러가 실패한 경우 빈 목록을 반환합니다.
func (o *Orchestrator) CrawlAll(ctx context.Context, artistName string) []RawConcertData {
	resultsPerSite := make([][]RawConcertData, len(o.crawlers))

	var wg sync.WaitGroup
	for i, c := range o.crawlers {
		wg.Add(1)
		go func(i int, c Crawler) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					applog.WithComponentAndFields(component, applog.Fields{
						"site":  c.SiteName(),
						"panic": r,
					}).Error("크롤러 실행 중 패닉이 발생했습니다")
				}
			}()

			items, err := c.Search(ctx, artistName)
			if err != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"site":   c.SiteName(),
					"artist": artistName,
				}).WithError(err).Warn("크롤링에 실패했습니다")
				return
			}
			resultsPerSite[i] = items
		}(i, c)
	}
	wg.Wait()

	var all []RawConcertData
	for _, items := range resultsPerSite {
		all = append(all, items...)
	}

	filtered := Filter(all)

	applog.WithComponentAndFields(component, applog.Fields{
		"artist":         artistName,
		"total_count":    len(all),
		"filtered_count": len(filtered),
	}).Info("크롤링 완료")

	return filtered
}
