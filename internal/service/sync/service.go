// Package sync 소스 DB의 가수 키워드를 순회하며 콘서트 정보를
// 수집(크롤링)·정제(AI 분석)하여 타겟 DB에 저장하는 동기화 파이프라인입니다.
//
// 가수별 파이프라인: 크롤링 → 원본 저장 → AI 분석 → 사후 필터 → 정제 결과 저장.
// 가수 간에는 트랜잭션을 공유하지 않으므로 한 가수의 실패가 전체 동기화를
// 중단시키지 않습니다.
package sync

import (
	"context"
	"encoding/json"
	gosync "sync"
	"time"

	"github.com/darkkaiser/concert-sync-server/internal/service/analyzer"
	"github.com/darkkaiser/concert-sync-server/internal/service/crawler"
	"github.com/darkkaiser/concert-sync-server/internal/storage"

	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
)

// component Sync 계층의 로깅용 컴포넌트 이름
const component = "sync"

// CrawlRunner 등록된 모든 사이트를 크롤링하여 필터링된 결과를 반환하는 인터페이스입니다.
type CrawlRunner interface {
	CrawlAll(ctx context.Context, artistName string) []crawler.RawConcertData
}

// SyncResult 전체 동기화의 집계 결과입니다.
type SyncResult struct {
	TotalArtists  int `json:"total_artists"`
	Synced        int `json:"synced"`
	Skipped       int `json:"skipped"`
	ConcertsFound int `json:"concerts_found"`
}

// ArtistSyncResult 단일 가수 동기화의 결과입니다.
type ArtistSyncResult struct {
	ArtistName    string `json:"artist_name"`
	ConcertsFound int    `json:"concerts_found"`
	Skipped       bool   `json:"skipped"`
}

// Service 동기화 파이프라인 서비스입니다.
//
// 스케줄러와 수동 트리거(HTTP)가 동시에 동기화를 시작할 수 있으므로,
// 내부 뮤텍스로 동기화가 겹쳐 실행되지 않도록 직렬화합니다.
type Service struct {
	source   storage.SourceStore
	target   storage.TargetStore
	crawler  CrawlRunner
	analyzer analyzer.ConcertAnalyzer

	mu gosync.Mutex
}

// NewService 동기화 서비스를 생성합니다.
func NewService(source storage.SourceStore, target storage.TargetStore, crawlRunner CrawlRunner, concertAnalyzer analyzer.ConcertAnalyzer) *Service {
	return &Service{
		source:   source,
		target:   target,
		crawler:  crawlRunner,
		analyzer: concertAnalyzer,
	}
}

// SyncAll 소스 DB의 전체 가수 키워드를 순서대로 동기화합니다.
//
// 이미 동기화된 가수(concert_search_results에 레코드 존재)는 건너뛰며,
// force가 true면 기존 레코드를 삭제한 뒤 다시 동기화합니다.
// 개별 가수의 실패는 로깅 후 다음 가수로 진행합니다.
func (s *Service) SyncAll(ctx context.Context, force bool) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	artists, err := s.source.ListArtists(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{TotalArtists: len(artists)}
	if len(artists) == 0 {
		applog.WithComponent(component).Info("소스 DB에 가수 키워드가 없습니다")
		return result, nil
	}

	alreadySynced, err := s.target.SyncedArtistIDs(ctx)
	if err != nil {
		return nil, err
	}

	for _, artist := range artists {
		if ctx.Err() != nil {
			applog.WithComponent(component).Warn("동기화가 중단되었습니다")
			break
		}

		_, synced := alreadySynced[artist.ID]

		if !force && synced {
			result.Skipped++
			continue
		}

		if force && synced {
			if err := s.target.DeleteArtistData(ctx, artist.ID); err != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"artist": artist.Name,
				}).WithError(err).Error("기존 동기화 데이터 삭제에 실패하여 건너뜁니다")
				continue
			}
		}

		count, err := s.syncOne(ctx, artist)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"artist": artist.Name,
			}).WithError(err).Error("가수 동기화에 실패했습니다")
			continue
		}

		result.Synced++
		result.ConcertsFound += count
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"total_artists":  result.TotalArtists,
		"synced":         result.Synced,
		"skipped":        result.Skipped,
		"concerts_found": result.ConcertsFound,
	}).Info("전체 동기화를 완료했습니다")

	return result, nil
}

// SyncArtist 이름이 정확히 일치하는 가수 한 명을 동기화합니다.
// 가수가 존재하지 않으면 apperrors.NotFound 타입의 에러를 반환합니다.
func (s *Service) SyncArtist(ctx context.Context, artistName string, force bool) (*ArtistSyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	artist, err := s.source.FindArtistByName(ctx, artistName)
	if err != nil {
		return nil, err
	}

	alreadySynced, err := s.target.SyncedArtistIDs(ctx)
	if err != nil {
		return nil, err
	}
	_, synced := alreadySynced[artist.ID]

	if !force && synced {
		return &ArtistSyncResult{ArtistName: artist.Name, Skipped: true}, nil
	}

	if force && synced {
		if err := s.target.DeleteArtistData(ctx, artist.ID); err != nil {
			return nil, err
		}
	}

	count, err := s.syncOne(ctx, *artist)
	if err != nil {
		return nil, err
	}

	return &ArtistSyncResult{ArtistName: artist.Name, ConcertsFound: count}, nil
}

// syncOne 단일 가수의 파이프라인을 실행하고 저장된 정제 레코드 수를 반환합니다.
//
// 원본 저장 실패는 파이프라인을 중단시키지만, AI 분석 실패는 로깅 후
// 빈 분석 결과로 처리합니다. (이미 저장된 원본은 유지)
func (s *Service) syncOne(ctx context.Context, artist storage.ArtistKeyword) (int, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"artist": artist.Name,
	}).Info("가수 동기화를 시작합니다")

	rawData := s.crawler.CrawlAll(ctx, artist.Name)

	crawledAt := time.Now()
	crawledRows := make([]storage.CrawledData, 0, len(rawData))
	for _, item := range rawData {
		crawledRows = append(crawledRows, storage.CrawledData{
			ArtistKeywordID: artist.ID,
			ArtistName:      artist.Name,
			SourceSite:      item.SourceSite,
			Title:           item.Title,
			Venue:           item.Venue,
			Date:            item.Date,
			Time:            item.Time,
			Price:           item.Price,
			BookingURL:      item.BookingURL,
			CrawledAt:       crawledAt,
		})
	}
	if err := s.target.SaveCrawledData(ctx, crawledRows); err != nil {
		return 0, err
	}

	analyzed, err := s.analyzer.Analyze(ctx, artist.Name, rawData)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"artist": artist.Name,
		}).WithError(err).Error("AI 분석에 실패하여 빈 분석 결과로 처리합니다")
		analyzed = nil
	}

	refined := postFilter(analyzed, len(rawData) > 0, time.Now())

	syncedAt := time.Now()
	resultRows := make([]storage.ConcertSearchResult, 0, len(refined))
	for _, r := range refined {
		source := r.Source
		if source == "" {
			source = "crawl+ai"
		}

		rawResponse := string(r.Raw)
		if rawResponse == "" {
			if serialized, err := json.Marshal(r); err == nil {
				rawResponse = string(serialized)
			}
		}

		resultRows = append(resultRows, storage.ConcertSearchResult{
			ArtistKeywordID: artist.ID,
			ArtistName:      artist.Name,
			ConcertTitle:    r.ConcertTitle,
			Venue:           r.Venue,
			ConcertDate:     r.ConcertDate,
			ConcertTime:     r.ConcertTime,
			TicketPrice:     r.TicketPrice,
			BookingDate:     r.BookingDate,
			BookingURL:      r.BookingURL,
			Source:          source,
			RawResponse:     rawResponse,
			Confidence:      r.Confidence,
			DataSources:     r.DataSources,
			IsVerified:      r.IsVerified,
			SyncedAt:        syncedAt,
		})
	}
	if err := s.target.SaveSearchResults(ctx, resultRows); err != nil {
		return 0, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"artist":         artist.Name,
		"crawled_count":  len(crawledRows),
		"concerts_found": len(resultRows),
	}).Info("가수 동기화를 완료했습니다")

	return len(resultRows), nil
}

// postFilter AI 분석 결과에 대한 방어적 사후 필터입니다.
//
//   - 크롤링 근거가 있는 경우, AI가 임의로 주입한 순수 검색 항목
//     (source가 "ai_search"이거나 data_sources가 "ai_only")을 제거합니다.
//   - 공연일(concert_date)이 이미 지난 항목을 제거합니다.
func postFilter(analyzed []analyzer.RefinedConcert, hasCrawlEvidence bool, now time.Time) []analyzer.RefinedConcert {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	filtered := make([]analyzer.RefinedConcert, 0, len(analyzed))
	for _, r := range analyzed {
		if hasCrawlEvidence && (r.Source == "ai_search" || r.DataSources == "ai_only") {
			continue
		}
		if crawler.IsPastEvent(r.ConcertDate, today) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
