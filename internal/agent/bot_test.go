package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abramin/norse-dungeon-crawler/pkg/api"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Quiet()
	os.Exit(m.Run())
}

// scriptedRand отдаёт заранее заданные броски. Исчерпанный список даёт нули.
type scriptedRand struct {
	ints []int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (r *scriptedRand) Float64() float64 { return 0 }

func TestNextCommand_RestartsAfterDeath(t *testing.T) {
	// Смерть важнее боя: после гибели бой остаётся висеть в снимке,
	// но единственный осмысленный ход - перезапуск.
	last := &api.ServerResponse{State: &api.GameState{
		Player: &api.PlayerView{IsDead: true},
		Combat: &api.CombatView{Active: true, MonsterID: "wight-1"},
	}}

	cmd := nextCommand(last, &scriptedRand{})
	assert.Equal(t, "RESTART", cmd.Action)
}

func TestNextCommand_AttacksInCombat(t *testing.T) {
	last := &api.ServerResponse{State: &api.GameState{
		Player: &api.PlayerView{HP: 12},
		Combat: &api.CombatView{Active: true, MonsterID: "wight-1"},
	}}

	cmd := nextCommand(last, &scriptedRand{ints: []int{5, 5}})
	assert.Equal(t, "ATTACK", cmd.Action)
}

func TestNextCommand_SearchOnLuckyRoll(t *testing.T) {
	last := &api.ServerResponse{State: &api.GameState{Player: &api.PlayerView{HP: 30}}}

	cmd := nextCommand(last, &scriptedRand{ints: []int{0}})
	assert.Equal(t, "SEARCH", cmd.Action)
	assert.Nil(t, cmd.Payload)
}

func TestNextCommand_MoveWithDirection(t *testing.T) {
	last := &api.ServerResponse{State: &api.GameState{Player: &api.PlayerView{HP: 30}}}

	// 5 - мимо обыска, 2 - третье направление (запад).
	cmd := nextCommand(last, &scriptedRand{ints: []int{5, 2}})
	require.Equal(t, "MOVE", cmd.Action)

	var dir api.DirectionPayload
	require.NoError(t, json.Unmarshal(cmd.Payload, &dir))
	assert.Equal(t, -1, dir.Dx)
	assert.Equal(t, 0, dir.Dy)
}

// wsStub поднимает тестовый WebSocket-сервер с заданным ответчиком.
func wsStub(t *testing.T, handle func(conn *websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestRun_PlaysScriptedSession(t *testing.T) {
	var mu sync.Mutex
	var received []string

	url := wsStub(t, func(conn *websocket.Conn) {
		// 1. Рукопожатие: пустая команда, в ответ снимок с токеном.
		var hello api.ClientCommand
		if err := conn.ReadJSON(&hello); err != nil {
			return
		}
		snapshot := api.ServerResponse{
			Type:  api.ResponseUpdate,
			Token: "bot-session",
			State: &api.GameState{Player: &api.PlayerView{HP: 30}},
		}
		if err := conn.WriteJSON(snapshot); err != nil {
			return
		}

		// 2. Эхо-цикл: на каждую команду - очередной снимок.
		turn := 0
		for {
			var cmd api.ClientCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			mu.Lock()
			received = append(received, cmd.Action)
			mu.Unlock()
			turn++
			_ = conn.WriteJSON(api.ServerResponse{
				Type:  api.ResponseUpdate,
				Turn:  turn,
				State: &api.GameState{Player: &api.PlayerView{HP: 30}},
			})
		}
	})

	// Сценарий: шаг на север, обыск, затем три шага подряд.
	rng := &scriptedRand{ints: []int{5, 0, 0, 5, 1, 5, 2, 5, 3}}
	require.NoError(t, run(context.Background(), url, 5, rng))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 5)
	assert.Equal(t, []string{"MOVE", "SEARCH", "MOVE", "MOVE", "MOVE"}, received)
}

func TestRun_SurvivesErrorResponse(t *testing.T) {
	url := wsStub(t, func(conn *websocket.Conn) {
		var hello api.ClientCommand
		if err := conn.ReadJSON(&hello); err != nil {
			return
		}
		_ = conn.WriteJSON(api.ServerResponse{Type: api.ResponseUpdate, Token: "bot-session"})

		// Сервер отвергает всё подряд - бот должен дожить до конца.
		for {
			var cmd api.ClientCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			_ = conn.WriteJSON(api.ServerResponse{
				Type:  api.ResponseError,
				Error: "unknown action",
			})
		}
	})

	rng := &scriptedRand{ints: []int{5, 0, 5, 1, 5, 2}}
	require.NoError(t, run(context.Background(), url, 3, rng))
}

func TestRun_DialFailure(t *testing.T) {
	err := Run(context.Background(), "ws://127.0.0.1:1/ws", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial")
}
