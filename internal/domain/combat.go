package domain

// CombatState - текущая схватка. Активна максимум одна: вход в новый
// бой возможен только при Active == false, движение в бою запрещено.
type CombatState struct {
	Active    bool
	MonsterID string
}

// Clear сбрасывает состояние схватки.
func (c *CombatState) Clear() {
	c.Active = false
	c.MonsterID = ""
}
