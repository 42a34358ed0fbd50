package server

import (
	"net/http"
	"time"

	"github.com/abramin/norse-dungeon-crawler/internal/engine"
	"github.com/abramin/norse-dungeon-crawler/internal/network"
	"github.com/abramin/norse-dungeon-crawler/pkg/api"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и сервисом сессий
type Client struct {
	Service *engine.Service
	Hub     *network.Broadcaster
	Conn    *websocket.Conn
	Send    chan api.ServerResponse

	session *engine.Session
	updates chan api.ServerResponse
}

func NewClient(service *engine.Service, hub *network.Broadcaster, conn *websocket.Conn) *Client {
	return &Client{
		Service: service,
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan api.ServerResponse, 256),
	}
}

// readPump читает команды от клиента.
// Первое сообщение - рукопожатие: по его токену возобновляется старая
// сессия либо создается новая. Обрыв соединения сессию не убивает:
// клиент может вернуться с тем же токеном.
func (c *Client) readPump() {
	defer func() {
		if c.session != nil {
			c.Hub.Unregister(c.session.Token, c.updates)
			logger.Log.WithFields(logrus.Fields{
				"component": "server",
				"session":   c.session.Token,
			}).Info("Client disconnected.")
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close websocket connection failed")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. РУКОПОЖАТИЕ
	var hello api.ClientCommand
	if err := c.Conn.ReadJSON(&hello); err != nil {
		logger.Log.WithField("component", "server").Warn("Handshake failed.")
		return
	}

	sess, resumed := c.Service.Session(hello.Token)
	if !resumed {
		sess = c.Service.CreateSession()
	}
	c.session = sess

	logger.Log.WithFields(logrus.Fields{
		"component": "server",
		"session":   sess.Token,
		"resumed":   resumed,
	}).Info("Client attached.")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	c.updates = c.Hub.Register(sess.Token)

	go func() {
		for msg := range c.updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// 3. Первый снимок несет токен: клиент сохраняет его для возврата
	first := c.Service.Snapshot(sess)
	first.Token = sess.Token
	c.Hub.SendTo(sess.Token, *first)

	// Рукопожатие с действием выполняется как обычная команда
	if hello.Action != "" {
		c.Hub.SendTo(sess.Token, *c.Service.Dispatch(sess, hello))
	}

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithField("component", "server").WithError(err).Warn("Read failed.")
			}
			break
		}
		c.Hub.SendTo(sess.Token, *c.Service.Dispatch(sess, cmd))
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close websocket connection in writePump failed")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
