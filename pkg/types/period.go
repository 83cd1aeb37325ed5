package types

import (
	"strconv"
	"time"
)

// Period - токен периода дашборда.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// PeriodRange - конкретный полуоткрытый интервал [Start, End).
type PeriodRange struct {
	Start time.Time `json:"period_start"`
	End   time.Time `json:"period_end"`
}

// ResolvePeriod переводит токен периода в интервал дат относительно текущего момента.
// Функция тотальна: неизвестный или пустой токен трактуется как "month".
func ResolvePeriod(token string) PeriodRange {
	return ResolvePeriodAt(token, time.Now())
}

// ResolvePeriodAt - то же самое, но с явной точкой отсчета (для тестов).
func ResolvePeriodAt(token string, now time.Time) PeriodRange {
	// Литеральный год ("2024") - отдельный случай: интервал ограничен концом года.
	if year, ok := parseLiteralYear(token); ok {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0)
		if end.After(now) {
			end = now
		}
		if start.After(now) {
			end = start
		}
		return PeriodRange{Start: start, End: end}
	}

	var start time.Time
	switch Period(token) {
	case PeriodWeek:
		start = truncateToMidnight(now.AddDate(0, 0, -7))
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodQuarter:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start = time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	return PeriodRange{Start: start, End: now}
}

// Previous возвращает предыдущий период той же длительности, примыкающий к текущему.
func (r PeriodRange) Previous() PeriodRange {
	length := r.End.Sub(r.Start)
	return PeriodRange{Start: r.Start.Add(-length), End: r.Start}
}

func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseLiteralYear(token string) (int, bool) {
	if len(token) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(token)
	if err != nil || year < 1000 {
		return 0, false
	}
	return year, true
}
