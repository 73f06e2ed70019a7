package database

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"weblearn_backend/internal/config"
)

// InitCache 连接本地进度缓存。缓存只是加速层，连接失败由调用方降级处理。
func InitCache(cfg *config.CacheConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Progress cache connection established")
	return rdb, nil
}
