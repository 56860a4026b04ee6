package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the UI served from frontendBaseURL to call the API.
// With an empty origin no cross-origin headers are added.
func CORS(frontendBaseURL string) gin.HandlerFunc {
	if frontendBaseURL == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return cors.New(cors.Config{
		AllowOrigins:  []string{frontendBaseURL},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Accept", "Content-Type"},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	})
}
