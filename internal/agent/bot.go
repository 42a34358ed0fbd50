// Package agent содержит headless-клиента для обкатки сервера.
// Бот подключается по WebSocket как обычный игрок и разыгрывает
// случайные команды, реагируя на присланное состояние: в бою бьёт,
// после смерти перезапускается, иначе бродит и изредка обыскивает.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/abramin/norse-dungeon-crawler/pkg/api"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"
)

// readTimeout ограничивает ожидание каждого ответа сервера:
// зависший сокет не должен вешать бота навечно.
const readTimeout = 10 * time.Second

// Run подключается к url и разыгрывает turns команд, после чего
// закрывает соединение. Истёкший ctx - штатный выход без ошибки.
func Run(ctx context.Context, url string, turns int) error {
	return run(ctx, url, turns, utils.NewSeeded(time.Now().UnixNano()))
}

func run(ctx context.Context, url string, turns int, rng utils.Rand) error {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	// Рукопожатие без токена: сервер заведёт свежую сессию.
	if err := conn.WriteJSON(api.ClientCommand{}); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	var last api.ServerResponse
	if err := readResponse(conn, &last); err != nil {
		return fmt.Errorf("first snapshot: %w", err)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "agent",
		"session":   last.Token,
	})
	log.Info("Bot attached.")

	for i := 0; i < turns; i++ {
		select {
		case <-ctx.Done():
			log.WithField("played", i).Info("Bot stopped.")
			return nil
		default:
		}

		cmd := nextCommand(&last, rng)
		if err := conn.WriteJSON(cmd); err != nil {
			return fmt.Errorf("send %s: %w", cmd.Action, err)
		}
		if err := readResponse(conn, &last); err != nil {
			return fmt.Errorf("read update: %w", err)
		}

		if last.Type == api.ResponseError {
			log.WithFields(logrus.Fields{
				"action": cmd.Action,
				"error":  last.Error,
			}).Warn("Server rejected command.")
			continue
		}
		fields := logrus.Fields{"turn": last.Turn, "action": cmd.Action}
		if last.State != nil && last.State.Player != nil {
			fields["hp"] = last.State.Player.HP
			fields["gold"] = last.State.Player.Gold
		}
		log.WithFields(fields).Debug("Turn played.")
	}

	log.WithField("played", turns).Info("Bot finished.")
	return nil
}

func readResponse(conn *websocket.Conn, dst *api.ServerResponse) error {
	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return err
	}
	return conn.ReadJSON(dst)
}

// nextCommand выбирает действие по последнему снимку состояния.
func nextCommand(last *api.ServerResponse, rng utils.Rand) api.ClientCommand {
	if last.State != nil {
		if last.State.Player != nil && last.State.Player.IsDead {
			return api.ClientCommand{Action: "RESTART"}
		}
		if last.State.Combat != nil && last.State.Combat.Active {
			return api.ClientCommand{Action: "ATTACK"}
		}
	}

	// Примерно каждый десятый ход - обыск, остальное - блуждание.
	if rng.Intn(10) == 0 {
		return api.ClientCommand{Action: "SEARCH"}
	}

	dirs := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	d := dirs[rng.Intn(len(dirs))]
	payload, _ := json.Marshal(api.DirectionPayload{Dx: d[0], Dy: d[1]})
	return api.ClientCommand{Action: "MOVE", Payload: payload}
}
