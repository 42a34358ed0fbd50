package domain

// Виды записей игрового журнала.
const (
	LogInfo   = "info"
	LogCombat = "combat"
	LogLoot   = "loot"
	LogDanger = "danger"
	LogSystem = "system"
)

// LogEntry - строка игрового журнала; хвост журнала входит в каждый снапшот.
type LogEntry struct {
	Turn int    `json:"turn"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}
