package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"macromatch-go-api/internal/config"
)

// entry is the wire shape shared by both remote stores.
type entry struct {
	Payload  string    `json:"payload" firestore:"payload"`
	StoredAt time.Time `json:"storedAt" firestore:"storedAt"`
}

type redisStore struct {
	client *redis.Client
	prefix string
}

func newRedisStore(ctx context.Context, cfg config.RedisConfig) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{client: client, prefix: cfg.Prefix}, nil
}

func (r *redisStore) Name() string { return "redis" }

func (r *redisStore) key(collection, key string) string {
	return r.prefix + collection + ":" + key
}

func (r *redisStore) Get(ctx context.Context, collection, key string) ([]byte, time.Time, error) {
	vals, err := r.client.HGetAll(ctx, r.key(collection, key)).Result()
	if err != nil {
		return nil, time.Time{}, err
	}
	if len(vals) == 0 {
		return nil, time.Time{}, errCacheMiss
	}
	storedAt, err := time.Parse(time.RFC3339Nano, vals["storedAt"])
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("redis entry %s: %w", key, err)
	}
	return []byte(vals["payload"]), storedAt, nil
}

func (r *redisStore) Set(ctx context.Context, collection, key string, payload []byte, ttl time.Duration) error {
	k := r.key(collection, key)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, k, "payload", string(payload), "storedAt", time.Now().UTC().Format(time.RFC3339Nano))
	pipe.Expire(ctx, k, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisStore) Flush(ctx context.Context, collections ...string) error {
	for _, c := range collections {
		iter := r.client.Scan(ctx, 0, r.prefix+c+":*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			continue
		}
		if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *redisStore) Close() error { return r.client.Close() }

type firestoreStore struct {
	client *firestore.Client
}

func newFirestoreStore(ctx context.Context, cfg config.FirestoreConfig) (*firestoreStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &firestoreStore{client: client}, nil
}

func (f *firestoreStore) Name() string { return "firestore" }

func (f *firestoreStore) Get(ctx context.Context, collection, key string) ([]byte, time.Time, error) {
	doc, err := f.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, time.Time{}, errCacheMiss
		}
		return nil, time.Time{}, err
	}
	var e entry
	if err := doc.DataTo(&e); err != nil {
		return nil, time.Time{}, err
	}
	return []byte(e.Payload), e.StoredAt, nil
}

// Set ignores ttl; Firestore entries are aged out on read.
func (f *firestoreStore) Set(ctx context.Context, collection, key string, payload []byte, _ time.Duration) error {
	_, err := f.client.Collection(collection).Doc(key).Set(ctx, entry{
		Payload:  string(payload),
		StoredAt: time.Now().UTC(),
	})
	return err
}

func (f *firestoreStore) Flush(ctx context.Context, collections ...string) error {
	for _, c := range collections {
		refs := f.client.Collection(c).DocumentRefs(ctx)
		for {
			ref, err := refs.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return err
			}
			if _, err := ref.Delete(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *firestoreStore) Close() error { return f.client.Close() }
