package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPopTimeout = 5 * time.Second

// RedisQueue is the multi-process backend: tasks are JSON blobs on a Redis
// list, popped with a blocking BRPOP so workers on other hosts can share
// the load. The client is owned by the caller.
type RedisQueue struct {
	client     *redis.Client
	key        string
	popTimeout time.Duration
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{
		client:     client,
		key:        key,
		popTimeout: defaultPopTimeout,
	}
}

func (q *RedisQueue) Push(ctx context.Context, task *Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push task: %w", err)
	}

	return nil
}

func (q *RedisQueue) Pop(ctx context.Context) (*Task, error) {
	for {
		values, err := q.client.BRPop(ctx, q.popTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to pop task: %w", err)
		}

		// BRPOP returns [key, value]
		task := &Task{}
		if err := json.Unmarshal([]byte(values[1]), task); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task: %w", err)
		}
		return task, nil
	}
}

func (q *RedisQueue) Size(ctx context.Context) (int, error) {
	size, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue size: %w", err)
	}
	return int(size), nil
}

func (q *RedisQueue) Close() error {
	return nil
}
