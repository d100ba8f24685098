// Package storage 소스/타겟 DB에 대한 gorm 기반 저장소 계층입니다.
//
// 소스 DB에서는 가수 키워드를 읽기 전용으로 조회하고, 타겟 DB에는
// 크롤링 원본(crawled_data)과 AI 분석 결과(concert_search_results)를
// 저장합니다. 두 DB는 같은 인스턴스일 수도, 서로 다른 인스턴스일 수도
// 있으므로 커넥션 풀을 각각 독립적으로 유지합니다.
package storage

import (
	"strings"
	"time"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// component Storage 계층의 로깅용 컴포넌트 이름
const component = "storage"

const (
	maxOpenConns = 10
	maxIdleConns = 5

	// connMaxIdleTime 유휴 커넥션의 최대 수명입니다.
	//
	// 스케줄러 워커는 동기화 주기 사이에 장시간 유휴 상태가 되므로,
	// DB 서버 측 유휴 타임아웃으로 끊어진 커넥션을 재사용하지 않도록
	// 커넥션을 주기적으로 재생성합니다. (pool_pre_ping에 해당하는 보호 장치)
	connMaxIdleTime = 5 * time.Minute

	connMaxLifetime = 30 * time.Minute
)

// Open 연결 문자열을 정규화하여 DB 커넥션 풀을 생성합니다.
//
// 실제 커넥션은 최초 쿼리 시점에 맺어지므로, 이 함수의 성공이
// DB 서버의 가용성을 보장하지는 않습니다. (Ping으로 확인)
func Open(rawURL string) (*gorm.DB, error) {
	dialector, err := Dialector(rawURL)
	if err != nil {
		return nil, err
	}

	scheme, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(rawURL), "jdbc:"), "://")
	applog.WithComponentAndFields(component, applog.Fields{
		"scheme": scheme,
	}).Info("DB 커넥션 풀 초기화")

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "DB 연결 초기화에 실패했습니다")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "DB 커넥션 풀 획득에 실패했습니다")
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}
