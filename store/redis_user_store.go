package store

import (
	"fmt"
	"time"
)

// RedisUserStore keeps per-user bot state: the chosen interface language and
// the "next message is a question" flag. Keyed by user, never process-global.
type RedisUserStore struct {
	client *RedisClient
	ttl    time.Duration
}

func NewRedisUserStore(redisClient *RedisClient, ttlHours int) *RedisUserStore {
	ttl := time.Duration(ttlHours) * time.Hour
	if ttlHours <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisUserStore{
		client: redisClient,
		ttl:    ttl,
	}
}

func (s *RedisUserStore) GetLang(userID int64) (string, error) {
	key := s.client.generateKey("user_lang", fmt.Sprintf("%d", userID))
	var lang string
	if err := s.client.Get(key, &lang); err != nil {
		return "", err
	}
	return lang, nil
}

func (s *RedisUserStore) SetLang(userID int64, lang string) error {
	key := s.client.generateKey("user_lang", fmt.Sprintf("%d", userID))
	// language choice does not expire
	return s.client.Set(key, lang, 0)
}

func (s *RedisUserStore) IsAwaitingQuestion(userID int64) bool {
	key := s.client.generateKey("user_pending_question", fmt.Sprintf("%d", userID))
	var pending bool
	if err := s.client.Get(key, &pending); err != nil {
		return false
	}
	return pending
}

func (s *RedisUserStore) SetAwaitingQuestion(userID int64) error {
	key := s.client.generateKey("user_pending_question", fmt.Sprintf("%d", userID))
	return s.client.Set(key, true, s.ttl)
}

func (s *RedisUserStore) ClearAwaitingQuestion(userID int64) error {
	key := s.client.generateKey("user_pending_question", fmt.Sprintf("%d", userID))
	return s.client.Del(key)
}
