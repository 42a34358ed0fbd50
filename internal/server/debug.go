package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/abramin/norse-dungeon-crawler/internal/engine"
	"github.com/abramin/norse-dungeon-crawler/pkg/api"
	"github.com/abramin/norse-dungeon-crawler/pkg/dungeon"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сессий
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleSessions)
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/map", h.handleMap)
}

// /debug/sessions - сводка по живым сессиям.
// DELETE /debug/sessions?session=<token> принудительно убивает сессию.
func (h *DebugHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodDelete {
		token := r.URL.Query().Get("session")
		if _, ok := h.Service.Session(token); !ok {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		h.Service.RemoveSession(token)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	type SessionSummary struct {
		Token    string    `json:"token"`
		Created  time.Time `json:"created"`
		Turn     int       `json:"turn"`
		PlayerHP int       `json:"player_hp"`
		Gold     int       `json:"gold"`
		Monsters int       `json:"monsters"`
		Regions  int       `json:"regions"`
	}

	summary := []SessionSummary{}
	for _, sess := range h.Service.Sessions() {
		item := SessionSummary{Token: sess.Token, Created: sess.Created}
		sess.WithGame(func(g *engine.Game) {
			item.Turn = g.Turn
			item.PlayerHP = g.Player.HP
			item.Gold = g.Player.Gold
			item.Monsters = g.Monsters.Len()
			item.Regions = g.Regions
		})
		summary = append(summary, item)
	}

	writeJSON(w, summary)
}

// /debug/state?session=<token> - клиентский снимок сессии.
// Эффекты не дренируются: отладочный просмотр не крадет их у клиента.
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Service.Session(r.URL.Query().Get("session"))
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var resp api.ServerResponse
	sess.WithGame(func(g *engine.Game) {
		resp = api.ServerResponse{
			Type:  api.ResponseUpdate,
			Turn:  g.Turn,
			State: engine.BuildState(g, nil),
		}
	})
	writeJSON(w, resp)
}

// /debug/map?session=<token> - ASCII-дамп карты глазами сервера,
// без маскировки секретов и тумана войны.
func (h *DebugHandler) handleMap(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Service.Session(r.URL.Query().Get("session"))
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var dump string
	sess.WithGame(func(g *engine.Game) {
		pos := g.Player.Pos
		dump = dungeon.RenderASCII(g.Grid, &pos)
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(dump)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно локальным отладочным страницам)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, ни одной сессии), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
