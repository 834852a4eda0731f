// Package api is the control-plane HTTP surface: start a run, poll its
// status, fetch its finished Report, and subscribe to live updates over
// WebSocket. An ambient concern outside the core per spec.md §1 — the
// engine runs identically whether or not anything is listening on this
// server. Adapted from internal/gateway/gateway.go's router/middleware
// shape and internal/auth/service.go's JWT verification.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/patientflow/edsim/internal/config"
	"github.com/patientflow/edsim/internal/engine"
	"github.com/patientflow/edsim/internal/live"
	"github.com/patientflow/edsim/internal/metrics"
	"github.com/patientflow/edsim/internal/snapshot"
	"github.com/patientflow/edsim/internal/telemetry"
)

// Config holds server configuration.
type Config struct {
	Addr            string
	JWTSecret       string
	TokenTTL        time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// RunState tracks one simulation run's lifecycle.
type RunState struct {
	ID          uuid.UUID
	Label       string
	Status      string // "running", "completed", "failed"
	Err         string
	StartedAt   time.Time
	CompletedAt time.Time
	Report      *metrics.Report
}

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Server is the control-plane HTTP server.
type Server struct {
	router    *gin.Engine
	log       *zap.Logger
	issuer    *TokenIssuer
	feed      *live.Feed
	telemetry *telemetry.Publisher
	snapshot  *snapshot.Publisher
	limiter   *rateLimiter

	mu   sync.RWMutex
	runs map[uuid.UUID]*RunState
}

// NewServer wires the gin router, auth, and run registry. feed, tel, and
// snap may each be nil if their ambient sink isn't configured; a nil feed
// makes the WebSocket endpoint refuse upgrades with 503, while a nil tel or
// snap is simply never attached to runs this server starts.
func NewServer(cfg Config, feed *live.Feed, tel *telemetry.Publisher, snap *snapshot.Publisher, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		router:    gin.New(),
		log:       log,
		issuer:    NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		feed:      feed,
		telemetry: tel,
		snapshot:  snap,
		limiter:   newRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
		runs:      make(map[uuid.UUID]*RunState),
	}
	s.routes()
	return s
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) routes() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.tracingMiddleware())
	s.router.Use(s.rateLimitMiddleware())

	s.router.GET("/health", s.healthCheck)
	s.router.POST("/api/v1/auth/token", s.issueToken)

	v1 := s.router.Group("/api/v1")
	v1.Use(s.authMiddleware())
	{
		v1.POST("/runs", s.createRun)
		v1.GET("/runs", s.listRuns)
		v1.GET("/runs/:id", s.getRun)
		v1.GET("/ws", s.handleWebSocket)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	sinks := gin.H{}
	if s.telemetry != nil {
		sinks["telemetry"] = s.telemetry.Healthy()
	}
	if s.snapshot != nil {
		sinks["snapshot"] = s.snapshot.Healthy()
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "sinks": sinks})
}

func (s *Server) issueToken(c *gin.Context) {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" {
		req.Role = "viewer"
	}
	token, err := s.issuer.Issue(req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type createRunRequest struct {
	Label  string `json:"label"`
	Preset string `json:"preset"`
}

func (s *Server) createRun(c *gin.Context) {
	role := c.GetString("role")
	if role != "operator" {
		c.JSON(http.StatusForbidden, gin.H{"error": "operator role required"})
		return
	}

	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Preset == "" {
		req.Preset = "baseline"
	}

	cfg, err := config.Preset(req.Preset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run := &RunState{
		ID:        uuid.New(),
		Label:     req.Label,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	go s.execute(run.ID, cfg)

	c.JSON(http.StatusAccepted, gin.H{"run_id": run.ID})
}

func (s *Server) execute(id uuid.UUID, cfg config.Config) {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			if run, ok := s.runs[id]; ok {
				run.Status = StatusFailed
				run.Err = "panic during run"
				run.CompletedAt = time.Now()
			}
			s.mu.Unlock()
			s.log.Error("run panicked", zap.Any("recover", r), zap.String("run_id", id.String()))
		}
	}()

	eng := engine.New(cfg, s.log).WithTelemetry(s.telemetry).WithSnapshot(s.snapshot).WithLiveFeed(s.feed)
	report := eng.Run()

	s.mu.Lock()
	run := s.runs[id]
	run.Status = StatusCompleted
	run.CompletedAt = time.Now()
	run.Report = &report
	s.mu.Unlock()
}

func (s *Server) listRuns(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]gin.H, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, gin.H{
			"id":     run.ID,
			"label":  run.Label,
			"status": run.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

func (s *Server) getRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	s.mu.RLock()
	run, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           run.ID,
		"label":        run.Label,
		"status":       run.Status,
		"error":        run.Err,
		"started_at":   run.StartedAt,
		"completed_at": run.CompletedAt,
		"report":       run.Report,
	})
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWebSocket(c *gin.Context) {
	if s.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live feed not configured"})
		return
	}
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.feed.ServeWS(c.Request.Context(), conn)
}

// Middleware

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}
		claims, err := s.issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("role", claims.Role)
		c.Next()
	}
}

func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (s *Server) tracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		c.Set("correlation_id", correlationID)
		c.Header("X-Correlation-ID", correlationID)
		c.Next()
	}
}
