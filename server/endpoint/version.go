package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alextes/calabi/version"
)

// Version returns a handler that reports build version information.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetVersionInfo())
	}
}
