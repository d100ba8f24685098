package analyzer

import "fmt"

// buildAnalysisPrompt 크롤링 데이터 분석용 프롬프트를 생성합니다. (분석 모드)
//
// 크롤링 데이터를 증거로 제시하고, 사이트별 항목 유지·데이터 정제·교차 검증·
// 빠진 정보의 검색 보충을 지시합니다.
func buildAnalysisPrompt(artistName, crawledJSON string) string {
	return fmt.Sprintf(`다음은 여러 티켓 사이트에서 크롤링한 "%s"의 콘서트 원본 데이터입니다.
크롤링 데이터는 해당 콘서트가 실제로 존재한다는 증거입니다.

%s

위 데이터를 분석하여 다음 작업을 수행하세요:

1. **사이트별 개별 유지**: 같은 공연이라도 사이트별로 별도 항목으로 유지하세요 (병합 금지). 각 사이트의 booking_url이 다르므로 반드시 개별 저장해야 합니다.
2. **데이터 정제**: 날짜(YYYY-MM-DD), 시간(HH:MM), 가격 형식을 통일
3. **교차 검증**: 같은 공연이 여러 사이트에 있으면 is_verified를 true로 설정
4. **빠진 정보 검색 보충**: 크롤링 데이터에 아래 항목이 비어있으면(null) 웹 검색을 통해 찾아서 채워주세요:
   - **concert_time** (공연 시간): 크롤링 결과에 time이 null인 경우 검색으로 보충
   - **ticket_price** (티켓 가격): 크롤링 결과에 price가 null인 경우 좌석 등급별 가격을 검색으로 보충
   - **booking_date** (예매 시작일): 티켓 오픈일/예매 시작일을 검색으로 보충

결과를 다음 JSON 배열 형식으로 출력하세요 (크롤링 항목 수와 동일한 수의 항목):
[
  {
    "concert_title": "크롤링 데이터의 title 필드 값을 그대로 사용",
    "venue": "공연 장소",
    "concert_date": "2026-03-15",
    "concert_time": "19:00",
    "ticket_price": "VIP 198,000원 / R석 165,000원 / S석 132,000원",
    "booking_date": "2026-02-01",
    "booking_url": "https://tickets.interpark.com/...",
    "source": "crawl+ai",
    "confidence": 0.85,
    "data_sources": "interpark",
    "is_verified": true
  },
  {
    "concert_title": "크롤링 데이터의 title 필드 값을 그대로 사용",
    "venue": "공연 장소",
    "concert_date": "2026-03-15",
    "concert_time": "19:00",
    "ticket_price": "VIP 198,000원 / R석 165,000원 / S석 132,000원",
    "booking_date": "2026-02-01",
    "booking_url": "https://ticket.yes24.com/...",
    "source": "crawl+ai",
    "confidence": 0.85,
    "data_sources": "yes24",
    "is_verified": true
  }
]

규칙:
- **절대 규칙**: 크롤링 데이터에 있는 공연만 결과에 포함하세요. 크롤링 데이터에 없는 공연을 임의로 추가하거나 만들어내지 마세요. 결과 항목 수는 크롤링 데이터의 항목 수와 정확히 같아야 합니다.
- **concert_title**: 각 크롤링 항목의 "title" 필드 값을 그대로 사용하세요 (아티스트 이름이 아닌 실제 공연 제목).
- 같은 공연이라도 사이트별로 별도 항목을 유지하세요 (각 사이트의 booking_url을 보존)
- 크롤링 데이터에 이미 있는 정보(제목, 장소, 날짜 등)는 그대로 사용하세요
- concert_time, ticket_price, booking_date가 크롤링에 없을 때만 검색으로 보충하세요
- ticket_price 포맷: 금액 단위는 반드시 '원'을 사용하세요 (예: 99,000원). 가격대가 하나뿐이면 앞에 "전석"을 붙이세요 (예: "전석 99,000원"). 여러 등급이면 "VIP 198,000원 / R석 165,000원" 형식으로 작성하세요. 지정석과 스탠딩석 가격이 동일하더라도 "전석"으로 합치지 말고 "스탠딩석 111,000원 / 지정석 111,000원"처럼 각각 분리하여 표기하세요
- 검색으로 보충한 필드가 있으면 source에 "crawl+ai_search"로 표기하세요
- 검색으로도 찾을 수 없는 정보는 null로 두세요 (추측하지 마세요)
- confidence: 여러 사이트에서 교차 확인된 공연 → 0.8~1.0 / 1개 사이트만 → 0.5~0.7 / AI 보충 포함 → 0.4~0.6
- is_verified: 같은 공연이 2개 이상 사이트에서 확인되면 true (각 항목 모두 true)
- data_sources: 해당 항목의 원본 사이트 이름 (AI 보충 시 "사이트명,ai_search")
- JSON 배열만 출력하세요.`, artistName, crawledJSON)
}

// buildFallbackPrompt AI 직접 검색용 프롬프트를 생성합니다. (폴백 모드)
//
// 크롤링 증거가 없으므로 낮은 신뢰도(0.3)와 "ai_search" 출처를 강제하고,
// 추측성 정보를 배제하도록 지시합니다.
func buildFallbackPrompt(artistName, today string) string {
	return fmt.Sprintf(`"%s"의 한국 내한 콘서트(공연) 정보를 검색해서 알려주세요.

다음 정보를 JSON 배열 형식으로 제공하세요:
- concert_title: 콘서트/공연 제목
- venue: 공연 장소
- concert_date: 공연 날짜 (예: "2026-03-15")
- concert_time: 공연 시간 (예: "19:00")
- ticket_price: 티켓 가격 정보. 금액 단위는 '원'. 가격대가 하나면 "전석 99,000원", 여러 등급이면 "VIP 198,000원 / R석 165,000원" 형식. 지정석과 스탠딩석 가격이 동일해도 "지정석 111,000원 / 스탠딩석 111,000원"처럼 각각 표기
- booking_date: 예매 시작일 (예: "2026-02-01")
- booking_url: 예매 링크
- source: "ai_search"
- confidence: 0.3
- data_sources: "ai_only"
- is_verified: false

오늘 날짜 이전에 이미 종료된 공연은 제외하세요 (오늘: %s).
확인된 정보가 없으면 빈 배열 []을 반환하세요.
추측이나 가짜 정보는 절대 포함하지 마세요.
JSON 배열만 출력하세요.`, artistName, today)
}
