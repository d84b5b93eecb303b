package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"backend_inventaire/config"

	"github.com/go-redis/redis/v8"
)

// Redis est le client partagé. Nil tant qu'InitRedis n'a pas abouti :
// les aides de cache deviennent alors des no-op.
var Redis *redis.Client

var ctx = context.Background()

// InitRedis initialise la connexion Redis. L'échec n'est pas fatal,
// l'application fonctionne simplement sans cache.
func InitRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.Timeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}

	Redis = client
	log.Println("✅ Connexion Redis établie")
	return nil
}

// CacheGetJSON lit une valeur JSON du cache et la désérialise dans dest
func CacheGetJSON(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	raw, err := Redis.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

// CacheSetJSON sérialise une valeur en JSON et la stocke avec un TTL
func CacheSetJSON(key string, value interface{}, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(ctx, key, raw, ttl).Err()
}

// CacheDel supprime une clé du cache
func CacheDel(key string) error {
	if Redis == nil {
		return nil
	}
	return Redis.Del(ctx, key).Err()
}
