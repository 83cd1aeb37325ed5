package services

import "math"

// CalculateTrend - процентное изменение текущего значения к предыдущему.
// Нулевая база не дает деления на ноль: рост с нуля считается как +100%,
// ноль к нулю - 0%.
func CalculateTrend(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// ClampRate приводит долю к проценту в пределах [0, 100].
// Грязные данные (resolved > opened) не должны давать ставку выше ста.
func ClampRate(numerator, denominator float64) int {
	if denominator == 0 {
		return 0
	}
	rate := math.Round(numerator / denominator * 100)
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return int(rate)
}
