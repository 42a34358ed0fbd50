// Бинарь-обёртка над internal/agent: натравливает бота на живой сервер.
// Удобен для дымовой проверки после деплоя: ./bot -url ws://host:8080/ws
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/abramin/norse-dungeon-crawler/internal/agent"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var url string
	var turns int
	flag.StringVar(&url, "url", "ws://localhost:8080/ws", "Server websocket endpoint")
	flag.IntVar(&turns, "turns", 200, "Commands to play before exiting")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := agent.Run(ctx, url, turns); err != nil {
		logger.Log.WithError(err).Fatal("Bot run failed.")
	}
}
