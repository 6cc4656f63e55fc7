package model

import (
	"context"
	"errors"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix is the prefix of the hash holding the counts of a language
const RedisKeyPrefix = "langid:model:"

// RedisTable reads token counts from a redis hash shared between hosts
type RedisTable struct {
	client redis.Cmdable
	key    string
}

// NewRedisTable returns the table of lang stored in client
func NewRedisTable(client redis.Cmdable, lang string) *RedisTable {
	return &RedisTable{client: client, key: RedisKeyPrefix + lang}
}

// Frequency implements langid.Table, lookup errors count as unknown tokens
func (r *RedisTable) Frequency(token string) (float64, bool) {
	v, err := r.client.HGet(context.Background(), r.key, token).Float64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			gologger.Warning().Msgf("redis: lookup of %v in %v failed got %v", token, r.key, err)
		}
		return 0, false
	}
	return v, v > 0
}

// Len returns the number of tokens in the table
func (r *RedisTable) Len(ctx context.Context) (int64, error) {
	return r.client.HLen(ctx, r.key).Result()
}

// uploadBatch is the number of hash fields written per HSET
const uploadBatch = 10_000

// Upload stores counts as the table of lang
func Upload(ctx context.Context, client redis.Cmdable, lang string, counts map[string]float64) error {
	if len(counts) == 0 {
		return nil
	}
	key := RedisKeyPrefix + lang
	values := make(map[string]interface{}, min(len(counts), uploadBatch))
	for token, count := range counts {
		values[token] = count
		if len(values) == uploadBatch {
			if err := client.HSet(ctx, key, values).Err(); err != nil {
				return err
			}
			values = make(map[string]interface{}, uploadBatch)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return client.HSet(ctx, key, values).Err()
}

// UploadDir stores every model found in dir in redis and returns the
// uploaded languages
func UploadDir(ctx context.Context, client redis.Cmdable, dir string, opts *Options) ([]string, error) {
	files, err := Discover(dir, opts.Langs)
	if err != nil {
		return nil, err
	}
	var langs []string
	for _, file := range files {
		counts, err := ReadCounts(file)
		if err != nil {
			return langs, errorutil.NewWithTag("langid", "failed to read model %v got %v", file.Path, err)
		}
		if len(counts) == 0 {
			gologger.Warning().Msgf("model %v is empty, skipping", file.Path)
			continue
		}
		if err := Upload(ctx, client, file.Lang, counts); err != nil {
			return langs, errorutil.NewWithTag("langid", "failed to upload model %v got %v", file.Lang, err)
		}
		gologger.Verbose().Msgf("uploaded %v entries for %v", len(counts), file.Lang)
		langs = append(langs, file.Lang)
	}
	return langs, nil
}
