package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-api-service/internal/app"
	"quiz-api-service/internal/domain"
)

// QuizCache is a read-through cache in front of a quiz repository. Quizzes
// are immutable after creation, so cached documents never go stale; the TTL
// only bounds memory. Stored as: SET quiz:{quizID} {json}.
type QuizCache struct {
	client *redis.Client
	inner  app.QuizRepository
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, inner app.QuizRepository, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateQuiz writes through to the backing repository and primes the cache
// best-effort.
func (c *QuizCache) CreateQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := c.inner.CreateQuiz(ctx, quiz); err != nil {
		return err
	}
	if data, err := json.Marshal(quiz); err == nil {
		_ = c.client.Set(ctx, c.key(quiz.ID), data, c.ttlWithJitter()).Err()
	}
	return nil
}

func (c *QuizCache) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := c.cached(ctx, quizID); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := c.cached(ctx, quizID); ok {
			return quiz, nil
		}

		quiz, err := c.inner.GetQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		if data, err := json.Marshal(quiz); err == nil {
			_ = c.client.Set(ctx, c.key(quizID), data, c.ttlWithJitter()).Err()
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) cached(ctx context.Context, quizID string) (domain.Quiz, bool) {
	raw, err := c.client.Get(ctx, c.key(quizID)).Bytes()
	if err != nil {
		// redis.Nil and transport errors both fall back to the loader.
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

func (c *QuizCache) key(quizID string) string {
	return "quiz:" + quizID
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
