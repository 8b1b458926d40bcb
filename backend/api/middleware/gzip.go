package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"files-manager/backend/common"
)

// DecodeGzipBody transparently decompresses gzipped request bodies. Base64
// upload payloads compress well, so clients are allowed to send them packed.
func DecodeGzipBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Content-Encoding"), "gzip") {
			zr, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				common.RespError(c, http.StatusBadRequest, "Invalid request")
				c.Abort()
				return
			}
			defer zr.Close()
			c.Request.Body = io.NopCloser(zr)
			c.Request.Header.Del("Content-Encoding")
		}
		c.Next()
	}
}
