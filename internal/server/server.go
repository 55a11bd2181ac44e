package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/roomkeeper/internal/server/handlers"
	"github.com/iudanet/roomkeeper/internal/server/middleware"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second

	// Rate limit для публичных endpoint'ов (без аутентификации)
	publicRateLimit  = 60
	publicRateWindow = time.Minute
)

// Config содержит настройки HTTP сервера
type Config struct {
	Addr      string
	JWTConfig handlers.JWTConfig
}

// Handlers группирует все HTTP handlers сервера
type Handlers struct {
	Rooms      *handlers.RoomsHandler
	Shares     *handlers.SharesHandler
	Capability *handlers.CapabilityHandler
	Health     *handlers.HealthHandler
}

// Server представляет HTTP сервер реестра комнат
type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// New создает новый сервер с настроенным роутером и middleware
func New(cfg Config, h Handlers, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// Middleware для защищенных endpoint'ов (identity-токен обязателен)
	auth := middleware.AuthMiddleware(logger, cfg.JWTConfig)

	// Публичные endpoint'ы защищаем rate limiter'ом вместо аутентификации
	rateLimit := middleware.RateLimitMiddleware(publicRateLimit, publicRateWindow, logger)

	// Health check
	mux.HandleFunc("GET /api/v1/health", h.Health.Health)

	// Rooms: только владелец работает со своими комнатами
	mux.Handle("GET /api/v1/rooms", auth(http.HandlerFunc(h.Rooms.List)))
	mux.Handle("POST /api/v1/rooms", auth(http.HandlerFunc(h.Rooms.Create)))
	mux.Handle("PUT /api/v1/rooms/{id}", auth(http.HandlerFunc(h.Rooms.Update)))
	mux.Handle("DELETE /api/v1/rooms/{id}", auth(http.HandlerFunc(h.Rooms.Delete)))

	// Share configurations: чтение публичное, мутации только для владельца
	mux.Handle("POST /api/v1/share-configs", auth(http.HandlerFunc(h.Shares.Create)))
	mux.Handle("GET /api/v1/share-configs", auth(http.HandlerFunc(h.Shares.List)))
	mux.Handle("GET /api/v1/share-configs/{shareId}", rateLimit(http.HandlerFunc(h.Shares.Get)))
	mux.Handle("PATCH /api/v1/share-configs/{shareId}", auth(http.HandlerFunc(h.Shares.Update)))
	mux.Handle("DELETE /api/v1/share-configs/{shareId}", auth(http.HandlerFunc(h.Shares.Delete)))

	// Проверка capability-токена: публичный endpoint, токен в query
	mux.Handle("GET /api/v1/capability/verify", rateLimit(http.HandlerFunc(h.Capability.Verify)))

	// Глобальная цепочка: recovery снаружи, чтобы поймать панику в logging
	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Run запускает сервер и блокируется до отмены контекста.
// После отмены выполняет graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.srv.Shutdown(shutdownCtx)
}
