package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/afaeffea/salon-bot-tg/internal/config"
	"github.com/afaeffea/salon-bot-tg/internal/db"
	"github.com/afaeffea/salon-bot-tg/internal/middleware"
	"github.com/afaeffea/salon-bot-tg/internal/routes"
)

func main() {
	cfg := config.Load()

	database := db.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, rdb, cfg)

	log.Printf("server listening on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
