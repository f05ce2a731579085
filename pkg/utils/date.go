package utils

import (
	"fmt"
	"time"
)

// ParseDate aceita string vazia e retorna nil nesse caso
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := ParseDateOnly(dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// ParseDateOnly exige o formato YYYY-MM-DD
func ParseDateOnly(dateStr string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q, formato esperado YYYY-MM-DD", dateStr)
	}
	return date, nil
}

// StartOfDay trunca o instante para a meia-noite UTC do mesmo dia
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
