package middleware

import (
	"net"
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	"github.com/gin-gonic/gin"
)

// TrustedHost 校验请求的 Host 头。
// hosts 包含 "*" 时放行所有请求。
func TrustedHost(hosts []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if h == "*" {
			allowAll = true
			break
		}
		allowed[h] = struct{}{}
	}

	return func(c *gin.Context) {
		if allowAll {
			c.Next()
			return
		}

		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}

		if _, ok := allowed[host]; !ok {
			common.RespondError(c, http.StatusBadRequest, "Invalid host header")
			c.Abort()
			return
		}

		c.Next()
	}
}
