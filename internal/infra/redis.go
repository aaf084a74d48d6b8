package infra

import (
	"log"

	"github.com/redis/go-redis/v9"
)

func InitRedis(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("Error parsing redis url: %v", err)
	}
	return redis.NewClient(opts)
}
