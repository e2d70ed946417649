package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shop-admin/internal/service"
)

type Server struct {
	orders        *service.OrderService
	notifications *service.NotificationService
	shopStatus    *service.ShopStatusService

	hub      *Hub
	audit    *AuditManager
	logger   *zap.Logger
	upgrader websocket.Upgrader

	httpServer *http.Server
}

func New(orders *service.OrderService, notifications *service.NotificationService, shopStatus *service.ShopStatusService, hub *Hub, audit *AuditManager, logger *zap.Logger) *Server {
	return &Server{
		orders:        orders,
		notifications: notifications,
		shopStatus:    shopStatus,
		hub:           hub,
		audit:         audit,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// admin frontend is served from another origin; access control
			// happens upstream of this service
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.handleWebSocket)
	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.audit.Start(ctx)

	log.Printf("Server starting on port %s", port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("HTTP server shutdown completed")

	s.audit.Shutdown(ctx)
	log.Println("Server shutdown completed successfully")

	return nil
}

// handleWebSocket upgrades the connection and runs the session loop until
// the client goes away. Admin identity is stamped by the auth proxy in
// front of this service.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	admin := AdminInfo{
		Email: r.Header.Get("X-Admin-Email"),
		Name:  r.Header.Get("X-Admin-Name"),
	}
	if admin.Email == "" {
		admin.Email = "admin"
	}
	if admin.Name == "" {
		admin.Name = "Admin"
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := newSession(conn, admin, s)
	s.hub.Add(session)
	defer func() {
		s.hub.Remove(session)
		_ = conn.Close()
	}()

	session.run(r.Context())
}
