package engine

import (
	"github.com/abramin/norse-dungeon-crawler/internal/domain"
)

// EffectSink принимает визуальные эффекты от симуляции. Ядро вызывает
// методы fire-and-forget: никакой эффект не влияет на состояние мира,
// и симуляция не ждёт его обработки.
type EffectSink interface {
	ParticlesAt(x, y int, variant string)
	HitFlash(target string)
	ScreenShake(duration, intensity int)
}

// NopSink молча глотает эффекты. Подходит для headless-запусков и тестов,
// которым эффекты не интересны.
type NopSink struct{}

func (NopSink) ParticlesAt(x, y int, variant string) {}
func (NopSink) HitFlash(target string)               {}
func (NopSink) ScreenShake(duration, intensity int)  {}

// EffectBuffer копит эффекты до ближайшего снапшота. Не потокобезопасен:
// доступ сериализуется мьютексом сессии, как и весь остальной Game.
type EffectBuffer struct {
	pending []domain.Effect
}

func NewEffectBuffer() *EffectBuffer {
	return &EffectBuffer{}
}

func (b *EffectBuffer) ParticlesAt(x, y int, variant string) {
	b.pending = append(b.pending, domain.Effect{
		Kind:    domain.EffectParticles,
		X:       x,
		Y:       y,
		Variant: variant,
	})
}

func (b *EffectBuffer) HitFlash(target string) {
	b.pending = append(b.pending, domain.Effect{
		Kind:   domain.EffectHitFlash,
		Target: target,
	})
}

func (b *EffectBuffer) ScreenShake(duration, intensity int) {
	b.pending = append(b.pending, domain.Effect{
		Kind:      domain.EffectScreenShake,
		Duration:  duration,
		Intensity: intensity,
	})
}

// Drain отдаёт накопленные эффекты и очищает буфер. Каждый эффект
// уходит клиенту ровно один раз, в первом снапшоте после события.
func (b *EffectBuffer) Drain() []domain.Effect {
	out := b.pending
	b.pending = nil
	return out
}
