package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"triage-backend/internal/handler"
	"triage-backend/internal/pipeline"
	"triage-backend/internal/repository"
)

type Server struct {
	router     *gin.Engine
	db         *sqlx.DB
	controller *pipeline.Controller
	logger     *zap.Logger
}

func NewServer(db *sqlx.DB, controller *pipeline.Controller, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:     router,
		db:         db,
		controller: controller,
		logger:     logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	visitRepo := repository.NewVisitRepository(s.db, s.logger)
	triageHandler := handler.NewTriageHandler(s.controller, visitRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api/v1")
	{
		api.POST("/analyze", triageHandler.Analyze)
		api.POST("/sync", triageHandler.SyncBatch)
		api.GET("/visit/:id", triageHandler.GetVisit)
		api.POST("/visit/:id/synced", triageHandler.MarkVisitSynced)
		api.GET("/visits/unsynced", triageHandler.GetUnsyncedVisits)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
