package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator выдаёт уникальные идентификаторы для экземпляров монстров.
// Инжектируется в спавнер: боевой код получает UUID-суффиксы, тесты —
// предсказуемую последовательность.
type IDGenerator interface {
	NextID(prefix string) string
}

// UUIDGenerator - боевой генератор: префикс, монотонный счётчик
// и фрагмент UUID. Id уникальны даже между рестартами одной сессии.
type UUIDGenerator struct {
	seq int64
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NextID(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s-%d-%s", prefix, g.seq, uuid.NewString()[:8])
}

// SequenceGenerator - детерминированный генератор для тестов
// и оффлайн-инструментов.
type SequenceGenerator struct {
	seq int64
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) NextID(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s-%d", prefix, g.seq)
}

// NewToken возвращает уникальный токен сессии.
func NewToken() string {
	return uuid.NewString()
}
