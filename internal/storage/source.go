package storage

import (
	"context"
	"errors"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	"gorm.io/gorm"
)

// SourceStore 소스 DB의 가수 키워드 조회 인터페이스입니다. (읽기 전용)
type SourceStore interface {
	// ListArtists 전체 가수 키워드를 ID 순으로 반환합니다.
	ListArtists(ctx context.Context) ([]ArtistKeyword, error)

	// FindArtistByName 이름이 정확히 일치하는 가수 키워드를 반환합니다.
	// 존재하지 않으면 apperrors.NotFound 타입의 에러를 반환합니다.
	FindArtistByName(ctx context.Context, name string) (*ArtistKeyword, error)

	// Ping DB 커넥션의 유효성을 확인합니다.
	Ping(ctx context.Context) error
}

// gormSourceStore gorm 기반 SourceStore 구현체입니다.
type gormSourceStore struct {
	db *gorm.DB
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ SourceStore = (*gormSourceStore)(nil)

// NewSourceStore 소스 DB 저장소를 생성합니다.
func NewSourceStore(db *gorm.DB) SourceStore {
	return &gormSourceStore{db: db}
}

func (s *gormSourceStore) ListArtists(ctx context.Context) ([]ArtistKeyword, error) {
	var artists []ArtistKeyword
	if err := s.db.WithContext(ctx).Order("id").Find(&artists).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "가수 키워드 목록 조회에 실패했습니다")
	}
	return artists, nil
}

func (s *gormSourceStore) FindArtistByName(ctx context.Context, name string) (*ArtistKeyword, error) {
	var artist ArtistKeyword
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&artist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "해당 이름의 가수 키워드가 존재하지 않습니다: '"+name+"'")
		}
		return nil, apperrors.Wrap(err, apperrors.System, "가수 키워드 조회에 실패했습니다")
	}
	return &artist, nil
}

func (s *gormSourceStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "소스 DB 커넥션 풀 획득에 실패했습니다")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "소스 DB에 연결할 수 없습니다")
	}
	return nil
}
