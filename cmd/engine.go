package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/lock"
	"github.com/abhisek/skillpath/internal/questiongen"
	"github.com/abhisek/skillpath/internal/quiz"
)

// buildEngine wires the LLM provider, the question generator and the
// optional Redis backfill lock into a quiz engine. The returned close func
// releases the Redis client, if one was opened.
func buildEngine(ctx context.Context, e *env) (*quiz.Engine, func(), error) {
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.Events(), e.log)
	if err != nil {
		return nil, nil, fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, questiongen.DefaultConfig(), e.log)

	opts := []quiz.Option{quiz.WithLogger(e.log)}
	closer := func() {}

	if addr := e.cfg.Redis.Addr; addr != "" {
		var client *redis.Client
		client, err = lock.Dial(ctx, addr)
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		opts = append(opts, quiz.WithBackfillLock(lock.NewRedisLock(client, e.cfg.Redis.LockTTL, e.log)))
		closer = func() {
			if err := client.Close(); err != nil {
				e.log.Warn("close redis", zap.Error(err))
			}
		}
		e.log.Info("backfill lock enabled", zap.String("redis", addr))
	}

	engine := quiz.NewEngine(e.store.Roadmaps(), e.store.Questions(), gen, e.cfg.QuizEngine(), opts...)
	return engine, closer, nil
}
