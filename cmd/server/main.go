package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abramin/norse-dungeon-crawler/internal/engine"
	"github.com/abramin/norse-dungeon-crawler/internal/network"
	"github.com/abramin/norse-dungeon-crawler/internal/server"
	"github.com/abramin/norse-dungeon-crawler/internal/version"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var grid int
	var addr string
	// Читаем флаг -seed. По умолчанию 0: каждая сессия получит свой случайный.
	flag.Int64Var(&seed, "seed", 0, "World seed (0 = random per session)")
	flag.IntVar(&grid, "grid", 0, "Grid side length (0 = default 16)")
	flag.StringVar(&addr, "addr", defaultAddr(), "HTTP listen address")
	flag.Parse()

	logger.Log.Info("Starting Norse Dungeon Crawler...")
	logger.Log.Info(version.String())

	if seed != 0 {
		logger.Log.Infof("🎲 Fixed seed %d: every session gets the same dungeon", seed)
	}

	// 2. Инициализация ядра
	service := engine.NewService(engine.Config{Seed: seed, GridSize: grid})
	hub := network.NewBroadcaster()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(service, hub, addr)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Даем клиентам и HTTP серверу время попрощаться.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Shutdown was not clean.")
	}

	logger.Log.Info("Done.")
}

func defaultAddr() string {
	if port := os.Getenv("NDC_PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
