package storage

import (
	"context"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	"gorm.io/gorm"
)

// TargetStore 타겟 DB의 크롤링 원본·분석 결과 저장소 인터페이스입니다.
type TargetStore interface {
	// Migrate 타겟 DB에 결과 테이블(crawled_data, concert_search_results)을 생성합니다.
	// 소스 DB의 artist_keyword 테이블은 절대 생성하지 않습니다.
	Migrate(ctx context.Context) error

	// SaveCrawledData 크롤링 원본 데이터를 단일 트랜잭션으로 일괄 저장합니다.
	SaveCrawledData(ctx context.Context, rows []CrawledData) error

	// SaveSearchResults 정제된 콘서트 레코드를 단일 트랜잭션으로 일괄 저장합니다.
	SaveSearchResults(ctx context.Context, rows []ConcertSearchResult) error

	// SyncedArtistIDs concert_search_results에 레코드가 존재하는
	// artist_keyword_id의 집합을 반환합니다. (스킵 판정용)
	SyncedArtistIDs(ctx context.Context) (map[int64]struct{}, error)

	// DeleteArtistData 특정 가수의 기존 레코드를 두 테이블 모두에서
	// 단일 트랜잭션으로 삭제합니다. (force 재동기화용)
	DeleteArtistData(ctx context.Context, artistKeywordID int64) error

	// ListSearchResults 정제된 콘서트 레코드를 최신 동기화 순으로 반환합니다.
	// artistName이 비어있지 않으면 가수 이름 부분 일치(대소문자 무시)로 필터링합니다.
	ListSearchResults(ctx context.Context, artistName string) ([]ConcertSearchResult, error)

	// ListSearchResultsByArtistID 특정 가수 키워드 ID의 정제된 레코드를 반환합니다.
	ListSearchResultsByArtistID(ctx context.Context, artistKeywordID int64) ([]ConcertSearchResult, error)

	// ListCrawledData 크롤링 원본 레코드를 최신 수집 순으로 반환합니다.
	// artistName 필터링 규칙은 ListSearchResults와 동일합니다.
	ListCrawledData(ctx context.Context, artistName string) ([]CrawledData, error)

	// Ping DB 커넥션의 유효성을 확인합니다.
	Ping(ctx context.Context) error
}

// gormTargetStore gorm 기반 TargetStore 구현체입니다.
type gormTargetStore struct {
	db *gorm.DB
}

var _ TargetStore = (*gormTargetStore)(nil)

// NewTargetStore 타겟 DB 저장소를 생성합니다.
func NewTargetStore(db *gorm.DB) TargetStore {
	return &gormTargetStore{db: db}
}

func (s *gormTargetStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&CrawledData{}, &ConcertSearchResult{}); err != nil {
		return apperrors.Wrap(err, apperrors.System, "타겟 DB 테이블 생성에 실패했습니다")
	}
	return nil
}

func (s *gormTargetStore) SaveCrawledData(ctx context.Context, rows []CrawledData) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return apperrors.Wrap(err, apperrors.System, "크롤링 원본 데이터 저장에 실패했습니다")
	}
	return nil
}

func (s *gormTargetStore) SaveSearchResults(ctx context.Context, rows []ConcertSearchResult) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return apperrors.Wrap(err, apperrors.System, "콘서트 검색 결과 저장에 실패했습니다")
	}
	return nil
}

func (s *gormTargetStore) SyncedArtistIDs(ctx context.Context) (map[int64]struct{}, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&ConcertSearchResult{}).
		Distinct("artist_keyword_id").
		Pluck("artist_keyword_id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "동기화 완료 가수 목록 조회에 실패했습니다")
	}

	synced := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		synced[id] = struct{}{}
	}
	return synced, nil
}

func (s *gormTargetStore) DeleteArtistData(ctx context.Context, artistKeywordID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_keyword_id = ?", artistKeywordID).Delete(&ConcertSearchResult{}).Error; err != nil {
			return err
		}
		return tx.Where("artist_keyword_id = ?", artistKeywordID).Delete(&CrawledData{}).Error
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "기존 동기화 데이터 삭제에 실패했습니다")
	}
	return nil
}

func (s *gormTargetStore) ListSearchResults(ctx context.Context, artistName string) ([]ConcertSearchResult, error) {
	query := s.db.WithContext(ctx).Model(&ConcertSearchResult{})
	if artistName != "" {
		query = query.Where("LOWER(artist_name) LIKE LOWER(?)", "%"+artistName+"%")
	}

	var rows []ConcertSearchResult
	if err := query.Order("synced_at DESC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "콘서트 검색 결과 조회에 실패했습니다")
	}
	return rows, nil
}

func (s *gormTargetStore) ListSearchResultsByArtistID(ctx context.Context, artistKeywordID int64) ([]ConcertSearchResult, error) {
	var rows []ConcertSearchResult
	err := s.db.WithContext(ctx).
		Where("artist_keyword_id = ?", artistKeywordID).
		Order("synced_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "콘서트 검색 결과 조회에 실패했습니다")
	}
	return rows, nil
}

func (s *gormTargetStore) ListCrawledData(ctx context.Context, artistName string) ([]CrawledData, error) {
	query := s.db.WithContext(ctx).Model(&CrawledData{})
	if artistName != "" {
		query = query.Where("LOWER(artist_name) LIKE LOWER(?)", "%"+artistName+"%")
	}

	var rows []CrawledData
	if err := query.Order("crawled_at DESC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "크롤링 원본 데이터 조회에 실패했습니다")
	}
	return rows, nil
}

func (s *gormTargetStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "타겟 DB 커넥션 풀 획득에 실패했습니다")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "타겟 DB에 연결할 수 없습니다")
	}
	return nil
}
