package storage

import "time"

// ArtistKeyword 소스 DB의 가수 키워드 테이블입니다. (읽기 전용 — 이미 존재하는 테이블)
type ArtistKeyword struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:500;not null" json:"name"`
}

// TableName 소스 DB의 기존 테이블 이름을 그대로 사용합니다.
func (ArtistKeyword) TableName() string { return "artist_keyword" }

// CrawledData 크롤링 원본 데이터 한 건입니다. 타겟 DB에 추가 전용으로 저장되며,
// 저장 이후 갱신되지 않습니다.
type CrawledData struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtistKeywordID int64     `gorm:"index;not null" json:"artist_keyword_id"`
	ArtistName      string    `gorm:"size:500;not null" json:"artist_name"`
	SourceSite      string    `gorm:"size:100;not null" json:"source_site"`
	Title           string    `gorm:"size:500" json:"title"`
	Venue           string    `gorm:"size:500" json:"venue"`
	Date            string    `gorm:"size:200" json:"date"`
	Time            string    `gorm:"size:200" json:"time"`
	Price           string    `gorm:"size:500" json:"price"`
	BookingURL      string    `gorm:"type:text" json:"booking_url"`
	CrawledAt       time.Time `json:"crawled_at"`
}

// TableName crawled_data 테이블에 매핑합니다.
func (CrawledData) TableName() string { return "crawled_data" }

// ConcertSearchResult AI 분석을 거친 정제된 콘서트 레코드입니다.
// 동기화 1회당 추가 전용으로 저장되며, force 모드의 재동기화 시에만 삭제됩니다.
type ConcertSearchResult struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtistKeywordID int64     `gorm:"index;not null" json:"artist_keyword_id"`
	ArtistName      string    `gorm:"size:500;not null" json:"artist_name"`
	ConcertTitle    string    `gorm:"size:500" json:"concert_title"`
	Venue           string    `gorm:"size:500" json:"venue"`
	ConcertDate     string    `gorm:"size:200" json:"concert_date"`
	ConcertTime     string    `gorm:"size:200" json:"concert_time"`
	TicketPrice     string    `gorm:"size:500" json:"ticket_price"`
	BookingDate     string    `gorm:"size:200" json:"booking_date"`
	BookingURL      string    `gorm:"type:text" json:"booking_url"`
	Source          string    `gorm:"size:200" json:"source"`
	RawResponse     string    `gorm:"type:text" json:"raw_response"`
	Confidence      float64   `gorm:"default:0" json:"confidence"`
	DataSources     string    `gorm:"size:500" json:"data_sources"`
	IsVerified      bool      `gorm:"default:false" json:"is_verified"`
	SyncedAt        time.Time `json:"synced_at"`
}

// TableName concert_search_results 테이블에 매핑합니다.
func (ConcertSearchResult) TableName() string { return "concert_search_results" }
