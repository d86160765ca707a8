package main

import (
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	// debug mode logs every route on startup; production runs quiet
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}
