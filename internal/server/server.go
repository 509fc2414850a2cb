// Package server is a replaceable HTTP front end over the extraction
// pipeline: multipart upload in, JSON rows or an XLSX download out.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/hirestack/cv-parser/internal/common"
	"github.com/hirestack/cv-parser/internal/export"
	"github.com/hirestack/cv-parser/internal/metrics"
	"github.com/hirestack/cv-parser/internal/pipeline"
)

type Server struct {
	engine   *gin.Engine
	proc     *pipeline.Processor
	exporter *export.Service
	cfg      common.ServerConfig
	logger   *slog.Logger
}

func New(proc *pipeline.Processor, exporter *export.Service, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		proc:     proc,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.POST("/extract", s.extractJSON)
	engine.POST("/extract/xlsx", s.extractXLSX)
	engine.GET("/healthz", s.health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.engine = engine
	return s
}

func (s *Server) Run() error {
	s.logger.Info("http server listening", "addr", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
