package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/reflex/internal/model"
)

// Archive appends completed attempts for one play session.
type Archive struct {
	store     *Store
	sessionID string
}

// NewArchive starts a session with a fresh ID. A nil store discards attempts.
func NewArchive(st *Store) *Archive {
	return &Archive{store: st, sessionID: uuid.NewString()}
}

// SessionID identifies the rows written by this archive.
func (a *Archive) SessionID() string { return a.sessionID }

// RecordAttempt stores an attempt. Failures are logged, never returned.
func (a *Archive) RecordAttempt(attempt model.Attempt, d model.Difficulty) {
	if a == nil || a.store == nil {
		return
	}
	rec := model.ArchivedAttempt{
		SessionID:  a.sessionID,
		RecordedAt: time.UnixMilli(attempt.Timestamp),
		ReactionMs: attempt.Time,
		Difficulty: d,
	}
	if _, err := a.store.InsertAttempt(context.Background(), rec); err != nil {
		log.Warn().Err(err).Str("session", a.sessionID).Msg("failed to archive attempt")
	}
}
