package handlers

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Sim описывает команды, которые принимает симуляция. Интерфейс объявлен
// на стороне хендлеров: сервис передаёт сюда живой Game, не замыкая
// импорты пакетов друг на друга.
type Sim interface {
	Move(dx, dy int)
	Attack()
	Search()
	Restart()
}

// Context передает хендлеру симуляцию сессии и её логгер.
// Game - живая ссылка: хендлер мутирует состояние через команды.
type Context struct {
	Game Sim
	Log  *logrus.Entry
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
// Хендлер не возвращает снапшот: сервис собирает его сам после вызова.
type HandlerFunc func(ctx Context, payload json.RawMessage) error
