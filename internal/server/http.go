package server

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof" // Profiling
	"time"

	"github.com/abramin/norse-dungeon-crawler/internal/engine"
	"github.com/abramin/norse-dungeon-crawler/internal/network"
	"github.com/abramin/norse-dungeon-crawler/internal/version"
	"github.com/abramin/norse-dungeon-crawler/pkg/api"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
)

type Server struct {
	Service *engine.Service
	Hub     *network.Broadcaster
	Addr    string

	started time.Time
	httpSrv *http.Server
}

func New(service *engine.Service, hub *network.Broadcaster, addr string) *Server {
	return &Server{
		Service: service,
		Hub:     hub,
		Addr:    addr,
		started: time.Now(),
	}
}

// Run запускает HTTP сервер и блокируется до его остановки.
func (s *Server) Run() error {
	// pprof регистрируется в DefaultServeMux своим init
	mux := http.DefaultServeMux

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.Service)
	debugHandler.RegisterRoutes(mux)

	s.httpSrv = &http.Server{Addr: s.Addr, Handler: mux}

	logger.Log.Infof("🛡️  Norse dungeon server running on %s", s.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown предупреждает подключенных клиентов и гасит HTTP сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Broadcast(api.ServerResponse{Type: api.ResponseError, Error: "server shutting down"})
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithField("component", "server").WithError(err).Error("Upgrade failed.")
		return
	}

	client := NewClient(s.Service, s.Hub, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "ok",
		"uptime":   time.Since(s.started).Round(time.Second).String(),
		"sessions": s.Service.Count(),
		"clients":  s.Hub.SubscriberCount(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}
