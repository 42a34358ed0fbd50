package domain

// EffectKind - вид эффекта обратной связи для рендерера.
type EffectKind uint8

const (
	EffectParticles EffectKind = iota
	EffectHitFlash
	EffectScreenShake
)

var effectNames = map[EffectKind]string{
	EffectParticles:   "particles",
	EffectHitFlash:    "hitFlash",
	EffectScreenShake: "screenShake",
}

func (k EffectKind) String() string { return effectNames[k] }

// Effect - однократное уведомление рендереру. Ядро шлёт их
// fire-and-forget и никогда не ждёт обработки.
type Effect struct {
	Kind      EffectKind
	X, Y      int    // particles: где рисовать
	Variant   string // particles: разновидность (gold, blood, death)
	Target    string // hitFlash: кого подсветить ("player" либо id монстра)
	Duration  int    // screenShake: длительность, мс
	Intensity int    // screenShake: амплитуда, px
}
