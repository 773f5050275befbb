package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	id "edumatch/pkg/domain"
	"edumatch/pkg/platform/sentinel"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis keys for the published result set.
	resultSetKey    = "edumatch:results"
	resultByCandKey = "edumatch:results:by_candidate"
)

// RedisResultStore shares the latest result set between instances. Replace
// runs inside a MULTI/EXEC transaction so readers never observe a half-swapped
// set.
type RedisResultStore struct {
	client *redis.Client
}

func NewRedisResultStore(client *redis.Client) *RedisResultStore {
	return &RedisResultStore{client: client}
}

func (s *RedisResultStore) Replace(ctx context.Context, set ResultSet) error {
	setBytes, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal result set: %w", err)
	}

	byCand := make(map[string]any, len(set.Results))
	for _, r := range set.Results {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal match result: %w", err)
		}
		byCand[r.Candidate.String()] = b
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultSetKey, setBytes, 0)
		pipe.Del(ctx, resultByCandKey)
		if len(byCand) > 0 {
			pipe.HSet(ctx, resultByCandKey, byCand)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace result set: %w", err)
	}
	return nil
}

func (s *RedisResultStore) Latest(ctx context.Context) (ResultSet, error) {
	raw, err := s.client.Get(ctx, resultSetKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return ResultSet{}, sentinel.ErrNotFound
	}
	if err != nil {
		return ResultSet{}, fmt.Errorf("get result set: %w", err)
	}

	var set ResultSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return ResultSet{}, fmt.Errorf("unmarshal result set: %w", err)
	}
	return set, nil
}

func (s *RedisResultStore) Get(ctx context.Context, candidate id.CandidateID) (MatchResult, error) {
	raw, err := s.client.HGet(ctx, resultByCandKey, candidate.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return MatchResult{}, sentinel.ErrNotFound
	}
	if err != nil {
		return MatchResult{}, fmt.Errorf("get match result: %w", err)
	}

	var result MatchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return MatchResult{}, fmt.Errorf("unmarshal match result: %w", err)
	}
	return result, nil
}
