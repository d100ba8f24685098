package crawler

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern 날짜 표기(YYYY.MM.DD, YYYY-M-D, YYYY/MM/DD 등)를 찾는 패턴입니다.
var datePattern = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)

// excludeKeywords 제목에 포함되면 콘서트가 아닌 것으로 판단하는 카테고리 키워드입니다.
var excludeKeywords = []string{
	"연극", "뮤지컬", "전시", "오페라", "발레", "클래식", "국악", "아동", "어린이", "키즈",
}

// Filter 크롤링 결과에 세 가지 변환을 순서대로 적용합니다.
//
//  1. 날짜 범위 전개: date에 날짜 표기가 2개 이상이면 날짜별로 복사본을 만든다.
//  2. 비공연 제외: 제목에 카테고리 키워드(연극, 뮤지컬 등)가 있으면 버린다.
//  3. 지난 공연 제외: 마지막 날짜(종료일)가 오늘보다 이전이면 버린다.
//
// 날짜가 없거나 해석할 수 없는 항목은 그대로 통과합니다.
func Filter(items []RawConcertData) []RawConcertData {
	return filterAt(items, time.Now())
}

// filterAt 기준 시각을 주입할 수 있는 Filter의 내부 구현입니다.
func filterAt(items []RawConcertData, now time.Time) []RawConcertData {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	filtered := make([]RawConcertData, 0, len(items))
	for _, item := range expandDateRanges(items) {
		if hasExcludedKeyword(item.Title) {
			continue
		}
		if IsPastEvent(item.Date, today) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// expandDateRanges date에 날짜 표기가 2개 이상인 항목을 날짜별 복사본으로 전개합니다.
// 날짜는 YYYY.MM.DD 형식(제로 패딩)으로 정규화됩니다.
func expandDateRanges(items []RawConcertData) []RawConcertData {
	expanded := make([]RawConcertData, 0, len(items))
	for _, item := range items {
		matches := datePattern.FindAllStringSubmatch(item.Date, -1)
		if len(matches) <= 1 {
			expanded = append(expanded, item)
			continue
		}

		for _, m := range matches {
			copied := item
			copied.Date = normalizeDate(m)
			expanded = append(expanded, copied)
		}
	}
	return expanded
}

// normalizeDate datePattern의 서브매치를 YYYY.MM.DD 형식으로 변환합니다.
func normalizeDate(m []string) string {
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return m[1] + "." + pad2(month) + "." + pad2(day)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func hasExcludedKeyword(title string) bool {
	for _, keyword := range excludeKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

// IsPastEvent date의 마지막 날짜 표기(기간이면 종료일)가 today보다 이전인지 판단합니다.
// 날짜 표기가 없으면 false를 반환합니다. (해석 불가 항목은 통과)
// AI 분석 결과의 concert_date 판정에도 동일한 규칙이 사용됩니다.
func IsPastEvent(date string, today time.Time) bool {
	matches := datePattern.FindAllStringSubmatch(date, -1)
	if len(matches) == 0 {
		return false
	}

	last := matches[len(matches)-1]
	year, _ := strconv.Atoi(last[1])
	month, _ := strconv.Atoi(last[2])
	day, _ := strconv.Atoi(last[3])

	endDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location())

	// time.Date는 2026.02.31 같은 달력에 없는 날짜를 다음 달로 보정한다.
	// 역변환 값이 다르면 해석 불가 항목으로 취급한다.
	if endDate.Year() != year || endDate.Month() != time.Month(month) || endDate.Day() != day {
		return false
	}

	return endDate.Before(today)
}
