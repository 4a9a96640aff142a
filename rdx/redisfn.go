package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(context.Background(), key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(context.Background(), key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(context.Background(), key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(context.Background(), key).Err()
}

// RdxSetNX is used as a lightweight distributed lock.
func RdxSetNX(key, value string, ttl time.Duration) (bool, error) {
	return Conn.SetNX(context.Background(), key, value, ttl).Result()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(context.Background(), hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(context.Background(), hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(context.Background(), hash, field).Result()
}

// Close releases the connection during shutdown.
func Close() {
	if err := Conn.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}
