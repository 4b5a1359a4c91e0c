// Package api serves the quantization transforms and batch assembly over
// HTTP.
package api

import (
	"time"

	"github.com/labstack/echo/v5"

	"github.com/ETS-Android5/tensorio-android/internal/logger"
)

type Server struct {
	store *BatchStore
	log   logger.Logger
	clock func() time.Time
}

func NewServer(store *BatchStore, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		store: store,
		log:   log,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/quantize", s.handleQuantize)
	e.POST("/v1/dequantize", s.handleDequantize)

	e.POST("/v1/batches", s.handleCreateBatch)
	e.GET("/v1/batches/:id", s.handleGetBatch)
	e.DELETE("/v1/batches/:id", s.handleDeleteBatch)
	e.POST("/v1/batches/:id/items", s.handleAddItem)
	e.POST("/v1/batches/:id/pack", s.handlePackBatch)
}
