package utils

import "math/rand"

// Rand — минимальный источник случайности для симуляции.
// Ему удовлетворяет *math/rand.Rand; тесты подставляют скриптованные броски.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewSeeded возвращает детерминированный источник для данного seed.
func NewSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RollRange возвращает равномерное целое в [min, max] включительно.
func RollRange(rng Rand, min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + rng.Intn(max-min+1)
}

// RollD6 — бросок шестигранного кубика.
func RollD6(rng Rand) int {
	return rng.Intn(6) + 1
}

// DrawFrom вынимает случайный элемент из среза без возврата.
// Выбранный элемент замещается последним, срез укорачивается.
// Вызывающий обязан проверить, что срез не пуст.
func DrawFrom[T any](rng Rand, pool *[]T) T {
	s := *pool
	i := rng.Intn(len(s))
	item := s[i]
	s[i] = s[len(s)-1]
	*pool = s[:len(s)-1]
	return item
}
