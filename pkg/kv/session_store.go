package kv

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

const sessionKeyPrefix = "session:"

// SessionStore persists navigation sessions, one compressed record per session id.
type SessionStore struct {
	backend Backend
}

func NewSessionStore(backend Backend) *SessionStore {
	return &SessionStore{backend: backend}
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

func (s *SessionStore) SaveSession(ctx context.Context, session datastructure.Session) error {
	val, err := encodeSession(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	return s.backend.Set(ctx, sessionKey(session.ID), val)
}

// SaveSessions writes all sessions in one batch.
func (s *SessionStore) SaveSessions(ctx context.Context, sessions []datastructure.Session) error {
	entries := make([]Entry, 0, len(sessions))
	for _, session := range sessions {
		val, err := encodeSession(session)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", session.ID, err)
		}
		entries = append(entries, Entry{Key: sessionKey(session.ID), Value: val})
	}
	return s.backend.SetBatch(ctx, entries)
}

// GetSession returns ErrNotFound when no session is stored under id.
func (s *SessionStore) GetSession(ctx context.Context, id string) (datastructure.Session, error) {
	val, err := s.backend.Get(ctx, sessionKey(id))
	if err != nil {
		return datastructure.Session{}, err
	}
	session, err := decodeSession(val)
	if err != nil {
		return datastructure.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, sessionKey(id))
}

func (s *SessionStore) Close() error {
	return s.backend.Close()
}
