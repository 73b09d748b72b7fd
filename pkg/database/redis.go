package database

import (
	"context"
	"fmt"
	"hiphop_roadmap_backend/internal/config"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisDialTimeout = 5 * time.Second

// InitRedis 未启用时返回 nil，目录缓存和 token 注销随之关闭
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Println("Redis disabled, catalog cache and token revocation are off")
		return nil, nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisDialTimeout,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}

	log.Printf("Redis connection established (%s, db %d)", addr, cfg.DB)
	return rdb, nil
}
