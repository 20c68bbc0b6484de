package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidshare/cmd/config"
	"vidshare/pkg/database"
	"vidshare/pkg/handlers"
	"vidshare/pkg/logger"
)

func main() {
	config.Load()
	logger.Init(config.Env)

	database.Init(config.DBDialect, config.DBDSN)
	defer database.DB.Close()

	if config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	handlers.RegisterRoutes(r)
	r.Static("/uploads", config.UploadsDir)

	logrus.Infof("listening on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
