package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("%s: %v", message, err))
		return false
	}
	return true
}

var errIDOutOfRange = errors.New("id out of range")

// parseUintParam accepts any unsigned decimal. Numbers too large to be a
// stored id return errIDOutOfRange.
func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errIDOutOfRange
		}
		return 0, fmt.Errorf("invalid %s", key)
	}
	if id > math.MaxInt64 || uint64(uint(id)) != id {
		return 0, errIDOutOfRange
	}
	return uint(id), nil
}

// pageIDParam writes 400 for a non-numeric id and 404 for one no page can have.
func pageIDParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	switch {
	case errors.Is(err, errIDOutOfRange):
		respondError(c, http.StatusNotFound, "page not found")
		return 0, false
	case err != nil:
		respondError(c, http.StatusBadRequest, "invalid page id")
		return 0, false
	}
	return id, true
}

// parseBoolQuery returns nil when the parameter is absent.
func parseBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &value, nil
}
