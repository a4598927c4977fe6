package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

// RegistrationStore keeps sign-up sessions in Redis until they expire.
// Key format:
//
//	registration:<id>             JSON session
//	registration:email:<email>    set of session ids for that address
type RegistrationStore struct {
	client redis.Cmdable
}

func NewRegistrationStore(client redis.Cmdable) *RegistrationStore {
	return &RegistrationStore{client: client}
}

func (s *RegistrationStore) Save(ctx context.Context, reg *domain.Registration, ttl time.Duration) error {
	payload, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, sessionKey(reg.ID), payload, ttl)
		p.SAdd(ctx, emailKey(reg.Email), reg.ID)
		p.Expire(ctx, emailKey(reg.Email), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save registration: %w", err)
	}
	return nil
}

func (s *RegistrationStore) Get(ctx context.Context, id string) (*domain.Registration, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	var reg domain.Registration
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("decode registration: %w", err)
	}
	return &reg, nil
}

// MarkVerified flags every live session for email as verified, keeping
// each session's remaining TTL. Expired sessions are skipped.
func (s *RegistrationStore) MarkVerified(ctx context.Context, email string) error {
	ids, err := s.client.SMembers(ctx, emailKey(email)).Result()
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}

	for _, id := range ids {
		reg, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		reg.Verified = true
		payload, err := json.Marshal(reg)
		if err != nil {
			return fmt.Errorf("encode registration: %w", err)
		}
		if err := s.client.Set(ctx, sessionKey(id), payload, redis.KeepTTL).Err(); err != nil {
			return fmt.Errorf("mark registration verified: %w", err)
		}
	}
	return nil
}

func sessionKey(id string) string {
	return "registration:" + id
}

func emailKey(email string) string {
	return "registration:email:" + email
}
