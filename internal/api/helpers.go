package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// idParam parses a numeric path parameter. Handlers treat a malformed id the
// same as an unknown one, so visibility and existence stay indistinguishable.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
