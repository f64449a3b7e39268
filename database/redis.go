package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"splitledger-backend/config"
)

// ConnectRedis returns a Redis client, or nil when Redis is unreachable.
// The service runs fine without the cache.
func ConnectRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisURL,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Println("⚠️  Redis not available, running without cache:", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}
