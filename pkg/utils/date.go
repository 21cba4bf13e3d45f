package utils

import "time"

type DateRange struct {
	Since time.Time
	Until time.Time
}

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// TruncateToDay descarta a parte de hora de uma data, preservando o fuso.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddMonths soma meses preservando o dia do mês, limitado ao último dia do
// mês de destino (2025-01-31 + 1 mês = 2025-02-28). time.AddDate não serve
// aqui porque transborda para o mês seguinte.
func AddMonths(base time.Time, months int) time.Time {
	monthIdx := base.Year()*12 + int(base.Month()) - 1 + months
	year := monthIdx / 12
	month := time.Month(monthIdx%12 + 1)
	day := base.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

// SubtractMonths subtrai meses com a mesma regra de clamping de AddMonths.
func SubtractMonths(base time.Time, months int) time.Time {
	return AddMonths(base, -months)
}

// MonthChunks divide [since, until] em janelas consecutivas de chunkMonths
// meses; a última janela é truncada em until.
func MonthChunks(since, until time.Time, chunkMonths int) []DateRange {
	if chunkMonths < 1 {
		chunkMonths = 1
	}
	var chunks []DateRange
	current := TruncateToDay(since)
	until = TruncateToDay(until)
	for !current.After(until) {
		nextStart := AddMonths(current, chunkMonths)
		chunkEnd := nextStart.AddDate(0, 0, -1)
		if chunkEnd.After(until) {
			chunkEnd = until
		}
		chunks = append(chunks, DateRange{Since: current, Until: chunkEnd})
		current = chunkEnd.AddDate(0, 0, 1)
	}
	return chunks
}

// DayChunks divide [since, until] em janelas de até maxSpanDays dias além do
// dia inicial (cada janela vai de since até since+maxSpanDays).
func DayChunks(since, until time.Time, maxSpanDays int) []DateRange {
	if maxSpanDays < 0 {
		maxSpanDays = 0
	}
	var chunks []DateRange
	current := TruncateToDay(since)
	until = TruncateToDay(until)
	for !current.After(until) {
		chunkEnd := current.AddDate(0, 0, maxSpanDays)
		if chunkEnd.After(until) {
			chunkEnd = until
		}
		chunks = append(chunks, DateRange{Since: current, Until: chunkEnd})
		current = chunkEnd.AddDate(0, 0, 1)
	}
	return chunks
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MinDate retorna a menor entre duas datas.
func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// MaxDate retorna a maior entre duas datas.
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
