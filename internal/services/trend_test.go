package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTrend(t *testing.T) {
	assert.Equal(t, 20, CalculateTrend(120, 100), "Рост со 100 до 120 - это +20%")
	assert.Equal(t, -20, CalculateTrend(80, 100), "Падение со 100 до 80 - это -20%")
	assert.Equal(t, 100, CalculateTrend(50, 0), "Рост с нуля всегда +100%")
	assert.Equal(t, 0, CalculateTrend(0, 0), "Ноль к нулю - без изменений")
	assert.Equal(t, -100, CalculateTrend(0, 50), "Падение до нуля - это -100%")
	assert.Equal(t, 33, CalculateTrend(100, 75), "Результат округляется до целого процента")
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0, ClampRate(5, 0), "Нулевой знаменатель дает 0, а не панику")
	assert.Equal(t, 50, ClampRate(1, 2))
	assert.Equal(t, 100, ClampRate(150, 100), "Ставка не может превысить 100%")
	assert.Equal(t, 0, ClampRate(-10, 100), "Ставка не может быть отрицательной")
}
