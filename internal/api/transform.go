package api

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v5"
)

func (s *Server) handleQuantize(c *echo.Context) error {
	req, err := decodeJSON[QuantizeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Quantization == nil {
		return writeBadRequest(c, "quantization is required")
	}
	q := req.Quantization.Quantizer()
	resp := QuantizeResponse{Values: make([]int, len(req.Values))}
	for i, v := range req.Values {
		n := q.Quantize(v)
		if n < 0 || n > math.MaxUint8 {
			resp.Clamped++
		}
		resp.Values[i] = n
	}
	if resp.Clamped > 0 {
		s.log.Debug("quantized values outside byte range", "count", resp.Clamped)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDequantize(c *echo.Context) error {
	req, err := decodeJSON[DequantizeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Quantization == nil {
		return writeBadRequest(c, "quantization is required")
	}
	d := req.Quantization.Dequantizer()
	resp := DequantizeResponse{Values: make([]float32, len(req.Values))}
	for i, v := range req.Values {
		resp.Values[i] = d.Dequantize(v)
	}
	return c.JSON(http.StatusOK, resp)
}
