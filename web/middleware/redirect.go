package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func RedirectMiddleware(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Redirect from the legacy flat routes to the panel layout
		redirects := map[string]string{
			"meus_pedidos":      "panel/requests",
			"novo_pedido":       "panel/requests/new",
			"pedidos":           "panel/all-requests",
			"historico":         "panel/history",
			"gerenciar_sindico": "panel/manage",
			"cadastro":          "register",
		}

		path := c.Request.URL.Path
		for from, to := range redirects {
			from, to = basePath+from, basePath+to

			if strings.HasPrefix(path, from) {
				newPath := to + path[len(from):]

				c.Redirect(http.StatusMovedPermanently, newPath)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
