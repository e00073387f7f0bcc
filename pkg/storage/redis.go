package storage

import (
	"fmt"

	"github.com/eventforge/eventforge/pkg/config"
	"github.com/go-redis/redis"
)

// NewRedis returns a client of the refresh token store. It fails unless the server answers a ping.
func NewRedis(c config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Address(),
		Password: c.Password,
		DB:       c.Database,
	})

	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %v", c.Address(), err)
	}

	return client, nil
}
