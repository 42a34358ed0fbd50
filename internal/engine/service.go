package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/internal/engine/handlers"
	"github.com/abramin/norse-dungeon-crawler/internal/engine/handlers/actions"
	"github.com/abramin/norse-dungeon-crawler/pkg/api"
	"github.com/abramin/norse-dungeon-crawler/pkg/dungeon"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Session - одна игровая сессия: симуляция, буфер эффектов и мьютекс,
// сериализующий команды. Симуляция однопоточна по построению; мьютекс
// лишь защищает её от параллельных команд транспортного слоя.
type Session struct {
	Token   string
	Created time.Time

	mu      sync.Mutex
	game    *Game
	effects *EffectBuffer
}

// WithGame выполняет fn под мьютексом сессии. Для отладочных ручек,
// которым нужен прямой доступ к симуляции.
func (s *Session) WithGame(fn func(*Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// Service владеет пулом сессий и реестром хендлеров команд.
type Service struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session

	handlers map[domain.ActionType]handlers.HandlerFunc
}

// NewService создает сервис. Нулевой cfg.Seed означает, что каждая
// сессия получит собственное зерно от часов; ненулевой фиксирует
// одинаковое подземелье для всех сессий (удобно для отладки).
func NewService(cfg Config) *Service {
	s := &Service{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}
	s.registerHandlers()
	return s
}

// registerHandlers связывает команды протокола с хендлерами.
func (s *Service) registerHandlers() {
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionAttack] = handlers.WithEmptyPayload(actions.HandleAttack)
	s.handlers[domain.ActionSearch] = handlers.WithEmptyPayload(actions.HandleSearch)
	s.handlers[domain.ActionRestart] = handlers.WithEmptyPayload(actions.HandleRestart)
}

// CreateSession поднимает новую симуляцию и выдает ей токен.
func (s *Service) CreateSession() *Session {
	cfg := s.cfg
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg = cfg.withDefaults()

	effects := NewEffectBuffer()
	sess := &Session{
		Token:   utils.NewToken(),
		Created: time.Now(),
		game:    NewGameWith(cfg, dungeon.DefaultBestiary(), utils.NewSeeded(cfg.Seed), utils.NewUUIDGenerator(), effects),
		effects: effects,
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"session":   sess.Token,
		"seed":      cfg.Seed,
	}).Info("Session created.")
	return sess
}

// Session находит сессию по токену.
func (s *Service) Session(token string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

// RemoveSession удаляет сессию. Отключение клиента сессию не убивает
// (он может вернуться по токену); удаление - административная операция.
func (s *Service) RemoveSession(token string) {
	s.mu.Lock()
	_, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"session":   token,
		}).Info("Session removed.")
	}
}

// Sessions возвращает все живые сессии в стабильном порядке токенов.
func (s *Service) Sessions() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// Count возвращает число живых сессий.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Dispatch выполняет команду над сессией и возвращает снимок состояния.
// Неизвестное действие и кривой payload дают ответ типа ERROR, сама
// симуляция при этом не трогается.
func (s *Service) Dispatch(sess *Session, cmd api.ClientCommand) *api.ServerResponse {
	action := domain.ParseAction(cmd.Action)

	handler, ok := s.handlers[action]
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"session":   sess.Token,
			"action":    cmd.Action,
		}).Warn("Unknown action.")
		return &api.ServerResponse{Type: api.ResponseError, Error: fmt.Sprintf("unknown action %q", cmd.Action)}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ctx := handlers.Context{
		Game: sess.game,
		Log: logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"session":   sess.Token,
			"action":    action.String(),
		}),
	}

	if err := handler(ctx, cmd.Payload); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"session":   sess.Token,
			"action":    action.String(),
			"error":     err.Error(),
		}).Warn("Command rejected.")
		return &api.ServerResponse{Type: api.ResponseError, Error: err.Error()}
	}

	return s.snapshotLocked(sess)
}

// Snapshot собирает текущее состояние сессии без выполнения команды.
// Отправляется клиенту сразу после подключения.
func (s *Service) Snapshot(sess *Session) *api.ServerResponse {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshotLocked(sess)
}

func (s *Service) snapshotLocked(sess *Session) *api.ServerResponse {
	state := BuildState(sess.game, sess.effects.Drain())
	return &api.ServerResponse{Type: api.ResponseUpdate, Turn: sess.game.Turn, State: state}
}
