package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/http/response"
	"github.com/GORLEABHILASH/booklovers/internal/normalization"
	"github.com/GORLEABHILASH/booklovers/internal/pkg/pointers"
	"github.com/GORLEABHILASH/booklovers/internal/platform/ctxutil"
)

// requestUser returns the authenticated user id, or writes 401 and returns "".
func requestUser(c *gin.Context) string {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || strings.TrimSpace(rd.UserID) == "" {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return ""
	}
	return rd.UserID
}

// pathID returns a trimmed path parameter, or writes 400 and returns "".
func pathID(c *gin.Context, name, code string) string {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		response.RespondError(c, http.StatusBadRequest, code, nil)
		return ""
	}
	return id
}

// bindJSON decodes the body, writing 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

// requiredInt reads a loosely typed JSON number; numeric strings and floats
// are accepted. A missing, null or non-numeric value writes 400.
func requiredInt(c *gin.Context, v any, field string) (int, bool) {
	n, ok := normalization.ParseInt(v)
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%s must be a number", field))
		return 0, false
	}
	return int(n), true
}

// optionalInt is nil when the field was absent or null; anything else must parse.
func optionalInt(c *gin.Context, v any, field string) (*int, bool) {
	if v == nil {
		return nil, true
	}
	n, ok := requiredInt(c, v, field)
	if !ok {
		return nil, false
	}
	return pointers.Int(n), true
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
