package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы исходящих сообщений.
const (
	ResponseUpdate = "UPDATE"
	ResponseError  = "ERROR"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" симуляции после очередной команды.
// Отправляется в ответ на каждую команду клиента и один раз при подключении.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" со снимком либо "ERROR" с текстом ошибки.
	Type string `json:"type"`

	// Token токен сессии. Заполняется только в первом снимке после
	// подключения; клиент сохраняет его для переподключения.
	Token string `json:"token,omitempty"`

	// Turn номер хода симуляции. Растёт с каждой принятой командой.
	Turn int `json:"turn,omitempty"`

	// State полный снимок игрового состояния. Присутствует в "UPDATE".
	State *GameState `json:"state,omitempty"`

	// Error текст ошибки транспортного уровня. Присутствует в "ERROR".
	Error string `json:"error,omitempty"`
}

// GameState это снимок всего, что клиент имеет право видеть.
type GameState struct {
	// Grid метаданные о размере карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез исследованных тайлов. Неисследованные клетки не
	// отправляются вовсе - клиент рисует на их месте туман.
	Map []TileView `json:"map,omitempty"`

	// Player состояние героя. Владелец сессии видит все свои статы.
	Player *PlayerView `json:"player,omitempty"`

	// Monsters срез видимых сейчас монстров.
	Monsters []MonsterView `json:"monsters,omitempty"`

	// Combat активная боевая сессия, если есть.
	Combat *CombatView `json:"combat,omitempty"`

	// Effects разовые события обратной связи (частицы, вспышки, тряска),
	// накопленные с прошлого снимка. Чисто декоративные.
	Effects []EffectView `json:"effects,omitempty"`

	// Logs хвост игрового журнала.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размер карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Size int `json:"size"`
}

// TileView это DTO для одного тайла карты. Скрытые объекты замаскированы
// ещё на сервере: нераскрытая ловушка приходит как пол своего класса,
// нераскрытая потайная дверь - как стена. Клиенту нечего подсматривать.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Type тип тайла после маскировки (wall, room, corridor, door,
	// secretDoor, trap, treasure, start, boss).
	Type string `json:"type"`

	// Symbol готовый символ для отрисовки (e.g. "#" для стены).
	Symbol string `json:"symbol"`

	// Visible true, если тайл в текущем поле зрения. Рендерится ярко.
	Visible bool `json:"visible"`

	// Explored true для каждого отправленного тайла. Если Visible=false,
	// тайл рендерится тускло ("туман войны").
	Explored bool `json:"explored"`

	// Revealed true для обнаруженной ловушки или потайной двери.
	Revealed bool `json:"revealed,omitempty"`

	// Triggered true для уже сработавшей ловушки.
	Triggered bool `json:"triggered,omitempty"`

	// MonsterID ссылка на монстра, стоящего на тайле. Заполняется только
	// для видимых тайлов: в тумане монстров не видно.
	MonsterID string `json:"monsterId,omitempty"`
}

// PlayerView это DTO героя.
type PlayerView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"maxHp"`
	Atk    int    `json:"atk"`
	Def    int    `json:"def"`
	Gold   int    `json:"gold"`
	Facing string `json:"facing"`
	IsDead bool   `json:"isDead"`
}

// MonsterView это DTO видимого монстра.
type MonsterView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Tier  string `json:"tier"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"maxHp"`
}

// CombatView это DTO активного боя.
type CombatView struct {
	Active    bool   `json:"active"`
	MonsterID string `json:"monsterId,omitempty"`
}

// EffectView это DTO события обратной связи для рендерера.
type EffectView struct {
	Kind      string `json:"kind"` // particles, hitFlash, screenShake
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
	Variant   string `json:"variant,omitempty"`
	Target    string `json:"target,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	Intensity int    `json:"intensity,omitempty"`
}

// LogEntry представляет одну запись в игровом журнале.
type LogEntry struct {
	Turn int    `json:"turn"`
	Kind string `json:"kind"` // info, combat, loot, danger, system
	Text string `json:"text"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор сессии. Выдаётся сервером при подключении;
	// в последующих командах не обязателен.
	Token string `json:"token,omitempty"`

	// Action название действия: MOVE, ATTACK, SEARCH, RESTART.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для действий, связанных с направлением (MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}
