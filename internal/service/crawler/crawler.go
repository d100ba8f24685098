// Package crawler 국내 티켓 예매 사이트에서 가수의 콘서트 정보를 수집합니다.
//
// 사이트별 크롤러(인터파크, 멜론티켓, 티켓링크, Yes24)는 Crawler 인터페이스를
// 구현하며, Orchestrator가 이들을 병렬로 실행하여 결과를 취합합니다.
// 취합된 결과는 필터(날짜 범위 전개, 비공연 제외, 지난 공연 제외)를 거쳐
// 반환됩니다.
package crawler

import "context"

// component Crawler 계층의 로깅용 컴포넌트 이름
const component = "crawler"

// RawConcertData 크롤링으로 수집된 콘서트 원본 데이터입니다.
// AI 분석기의 프롬프트에 JSON으로 직렬화되어 전달되므로
// 필드 태그는 분석 프롬프트의 계약과 일치해야 합니다.
type RawConcertData struct {
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
	Venue      string `json:"venue,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	Price      string `json:"price,omitempty"`
	BookingURL string `json:"booking_url,omitempty"`
	SourceSite string `json:"source_site"`
}

// Crawler 단일 티켓 사이트 크롤러 인터페이스입니다.
type Crawler interface {
	// SiteName 크롤러가 담당하는 사이트의 식별자를 반환합니다. (예: "interpark")
	SiteName() string

	// Search 가수 이름으로 해당 사이트를 검색하여 콘서트 정보를 수집합니다.
	Search(ctx context.Context, artistName string) ([]RawConcertData, error)
}
