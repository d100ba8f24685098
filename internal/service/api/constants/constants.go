// Package constants API 서비스 전반에서 사용하는 상수를 정의합니다.
package constants

import "time"

// 로깅 시 로그의 발생 위치(컴포넌트)를 식별하기 위한 상수입니다.
const (
	// ComponentHandler 핸들러 로그의 컴포넌트 이름입니다.
	ComponentHandler = "api.handler"

	// ComponentService 서비스 로그의 컴포넌트 이름입니다.
	ComponentService = "api.service"

	// ComponentMiddleware 미들웨어 로그의 컴포넌트 이름입니다.
	ComponentMiddleware = "api.middleware"

	// ComponentErrorHandler 에러 핸들러 로그의 컴포넌트 이름입니다.
	ComponentErrorHandler = "api.error_handler"
)

// 서버 설정 기본값 상수입니다.
const (
	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (10초)
	// 헤더를 매우 느리게 전송하는 악의적인 클라이언트(Slowloris)의
	// 연결 고갈 공격을 방지합니다.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결의 최대 유휴 시간 (120초)
	DefaultIdleTimeout = 120 * time.Second

	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간 (10분)
	// 동기화 실행 엔드포인트는 전체 가수의 크롤링과 AI 분석이 끝날 때까지
	// 블로킹되므로 일반적인 API보다 훨씬 긴 타임아웃이 필요합니다.
	DefaultRequestTimeout = 10 * time.Minute

	// DefaultMaxBodySize 요청 본문의 최대 크기 (128KB)
	// 이 서버의 엔드포인트는 요청 본문을 받지 않으므로 작게 제한합니다.
	DefaultMaxBodySize = "128K"

	// DefaultRateLimitPerSecond IP당 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP당 버스트 허용량
	DefaultRateLimitBurst = 40

	// DefaultHealthCheckTimeout 헬스체크 시 DB Ping의 최대 대기 시간 (3초)
	DefaultHealthCheckTimeout = 3 * time.Second
)

// 클라이언트에게 반환되는 표준 에러 메시지 상수입니다.
const (
	// ErrMsgBadRequest 400 Bad Request 에러 메시지입니다.
	ErrMsgBadRequest = "잘못된 요청입니다."

	// ErrMsgNotFound 404 Not Found 에러 메시지입니다.
	ErrMsgNotFound = "페이지를 찾을 수 없습니다."

	// ErrMsgTooManyRequests 429 Too Many Requests 에러 메시지입니다.
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."

	// ErrMsgInternalServer 500 Internal Server Error 메시지입니다.
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다."

	// ErrMsgSyncFailed 동기화 실행이 실패했을 때의 에러 메시지입니다.
	ErrMsgSyncFailed = "동기화 실행 중 오류가 발생했습니다."

	// ErrMsgArtistNotFound 가수 키워드를 찾을 수 없을 때의 에러 메시지입니다.
	ErrMsgArtistNotFound = "해당 이름의 가수 키워드를 찾을 수 없습니다."

	// ErrMsgNoResultsForArtist 특정 가수의 검색 결과가 없을 때의 에러 메시지입니다.
	ErrMsgNoResultsForArtist = "해당 가수의 콘서트 검색 결과가 없습니다."

	// ErrMsgInvalidArtistKeywordID 가수 키워드 ID가 숫자가 아닐 때의 에러 메시지입니다.
	ErrMsgInvalidArtistKeywordID = "가수 키워드 ID는 숫자여야 합니다."
)

// 헬스체크 상태 상수입니다.
const (
	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"
)

// 보안상 로그에 남길 때 마스킹(가림) 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"password",
	"token",
	"secret",
}
