package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"islamicapp/internal/config"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

// InitRedis 初始化 Redis 连接
// Redis 只作内容接口的缓存，连不上不影响启动，未命中时直接回源
func InitRedis(cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("连接 Redis 失败，内容缓存不可用: %v", err)
	} else {
		log.Println("Redis 连接成功")
	}

	RedisClient = client
	return client
}
