package repository

import (
	"context"
	"encoding/json"
	"hiphop_roadmap_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const catalogCacheKey = "hiphop:catalog:skills"

// SkillCache 技能目录的 Redis 缓存；Redis 为 nil 时所有操作都是空操作
type SkillCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewSkillCache(rdb *redis.Client, ttl time.Duration) *SkillCache {
	return &SkillCache{Redis: rdb, TTL: ttl}
}

func (c *SkillCache) Enabled() bool {
	return c != nil && c.Redis != nil
}

// Get 返回缓存的技能列表；未命中时 ok 为 false
func (c *SkillCache) Get(ctx context.Context) ([]model.Skill, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}

	data, err := c.Redis.Get(ctx, catalogCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var skills []model.Skill
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, false, err
	}
	return skills, true, nil
}

func (c *SkillCache) Set(ctx context.Context, skills []model.Skill) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, catalogCacheKey, data, c.TTL).Err()
}

func (c *SkillCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.Redis.Del(ctx, catalogCacheKey).Err()
}
