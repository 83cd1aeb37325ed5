package utils

import (
	"fmt"
	"math"
)

// RoundTo1 округляет до одного знака после запятой. Используется для MTTR в днях.
func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatDaysHumanReadable преобразует дни (дробное число) в строку вида "2.5 дн".
func FormatDaysHumanReadable(days float64) string {
	if days < 0.05 {
		return "0 дн"
	}
	if days < 1 {
		hours := math.Round(days * 24)
		return fmt.Sprintf("%.0f ч", hours)
	}
	return fmt.Sprintf("%.1f дн", RoundTo1(days))
}
