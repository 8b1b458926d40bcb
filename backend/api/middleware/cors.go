package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows browser clients from any origin, including the custom token
// header.
func CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Token")
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	return cors.New(config)
}
