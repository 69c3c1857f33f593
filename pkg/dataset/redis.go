package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
)

// RedisSource reads CSV text stored as a plain string value.
//
//	redis://:password@localhost:6379/0#graph:nodes
type RedisSource struct{}

// Fetch implements Fetcher.
func (RedisSource) Fetch(ctx context.Context, uri string) (*Table, error) {
	conn, key, err := splitFragment(uri)
	if err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(conn)
	if err != nil {
		return nil, neterrors.Wrap(neterrors.ErrCodeInvalidSource, err, "parse redis url")
	}

	rdb := redis.NewClient(opts)
	defer rdb.Close()

	text, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, neterrors.New(neterrors.ErrCodeNotFound, "redis key %q not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return ReadCSV(strings.NewReader(text))
}
