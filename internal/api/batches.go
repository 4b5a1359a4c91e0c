package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/ETS-Android5/tensorio-android/internal/tensorbuf"
	"github.com/ETS-Android5/tensorio-android/pkg/batch"
	"github.com/ETS-Android5/tensorio-android/pkg/layer"
)

func (s *Server) handleCreateBatch(c *echo.Context) error {
	req, err := decodeJSON[CreateBatchRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	resp, err := s.store.Create(req.Keys, s.clock())
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	s.log.Info("batch created", "id", resp.ID, "keys", resp.Keys)
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleGetBatch(c *echo.Context) error {
	resp, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, ErrBatchNotFound.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteBatch(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, ErrBatchNotFound.Error())
	}
	return c.JSON(http.StatusOK, DeleteBatchResponse{ID: id, Object: "batch", Deleted: true})
}

func (s *Server) handleAddItem(c *echo.Context) error {
	id := c.Param("id")
	req, err := decodeJSON[AddItemRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	item, err := itemFromValues(req.Values)
	if err != nil {
		return writeAddError(c, err)
	}
	resp, err := s.store.Add(id, item)
	if err != nil {
		s.log.Debug("item rejected", "id", id, "error", err)
		return writeAddError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePackBatch(c *echo.Context) error {
	id := c.Param("id")
	req, err := decodeJSON[PackBatchRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(req.Interfaces) == 0 {
		return writeBadRequest(c, "interfaces are required")
	}
	if err := layer.CheckUnique(req.Interfaces); err != nil {
		return writeBadRequest(c, err.Error())
	}

	var (
		bufs  map[string][]byte
		stats tensorbuf.Stats
	)
	err = s.store.With(id, func(b *batch.Batch) error {
		var err error
		bufs, stats, err = tensorbuf.PackBatch(req.Interfaces, b)
		return err
	})
	switch {
	case errors.Is(err, ErrBatchNotFound):
		return writeNotFound(c, err.Error())
	case err != nil:
		return writeBadRequest(c, err.Error())
	}
	if stats.Clamped > 0 {
		s.log.Warn("packed batch saturated values", "id", id, "clamped", stats.Clamped)
	}
	return c.JSON(http.StatusOK, PackBatchResponse{
		ID:       id,
		Buffers:  bufs,
		Elements: stats.Elements,
		Clamped:  stats.Clamped,
	})
}
