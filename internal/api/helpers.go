package api

import (
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/ETS-Android5/tensorio-android/pkg/batch"
)

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{Message: msg, Type: errType},
	})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

// writeAddError maps errors from adding an item to a batch onto HTTP responses.
func writeAddError(c *echo.Context, err error) error {
	var mismatch *batch.SchemaMismatchError
	switch {
	case errors.As(err, &mismatch):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error": ErrorBody{
				Message: mismatch.Error(),
				Type:    "schema_mismatch",
				Missing: mismatch.Missing,
				Extra:   mismatch.Extra,
			},
		})
	case errors.Is(err, ErrBatchNotFound):
		return writeNotFound(c, err.Error())
	case errors.Is(err, ErrInvalidRequest):
		return writeBadRequest(c, err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// itemFromValues builds an item with keys in sorted order so that errors and
// logs are deterministic.
func itemFromValues(values map[string]ValueDTO) (*batch.Item, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	item := batch.NewItem()
	for _, k := range keys {
		v, err := values[k].toValue()
		if err != nil {
			return nil, newInvalidRequest(k + ": " + err.Error())
		}
		item.Put(k, v)
	}
	return item, nil
}

// ParseItem decodes one item in the wire form used by the items endpoint:
// an object mapping each key to a ValueDTO.
func ParseItem(data []byte) (*batch.Item, error) {
	var values map[string]ValueDTO
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, newInvalidRequest(err.Error())
	}
	return itemFromValues(values)
}
