package quiz

import "context"

// BackfillLock serializes pool backfills for one (topic, difficulty) key.
//
// Without a lock, concurrent quiz requests against a thin pool can each
// decide to backfill and the pool overshoots MinPoolSize. The served quizzes
// are still correct, so the engine defaults to noLock.
type BackfillLock interface {
	// Acquire blocks until the lock for key is held or ctx is done.
	// The returned release func must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type noLock struct{}

func (noLock) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

func poolKey(topic, difficulty string) string {
	return "quiz-backfill:" + topic + ":" + difficulty
}
