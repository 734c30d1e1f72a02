// Package cache manages the Redis client used by the rate limiter.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and verifies it responds. The service runs
// without Redis; callers must tolerate a nil client.
func Connect(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without rate limiting)", err)
		return nil
	}

	log.Println("Redis connected successfully")
	return client
}

// Close releases the client if one was established.
func Close(client *redis.Client) {
	if client != nil {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}
}
