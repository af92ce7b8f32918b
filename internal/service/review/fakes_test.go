package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
	"github.com/DesdeChaves/valcoin-memoria/internal/store"
)

// learnerStateKey identifies one memory state row across learners.
type learnerStateKey struct {
	learnerID uuid.UUID
	unitID    uuid.UUID
	subID     string
}

// fakeDB is an in-memory stand-in for the database. Writes issued inside
// a transaction land in staging and only become visible on commit, which
// lets tests observe rollback behavior without a real database.
type fakeDB struct {
	cards map[uuid.UUID]*domain.Flashcard

	states       map[learnerStateKey]*domain.MemoryState
	stagedStates map[learnerStateKey]*domain.MemoryState

	logs       []*domain.ReviewLogEntry
	stagedLogs []*domain.ReviewLogEntry

	upsertErr error
	appendErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		cards:        make(map[uuid.UUID]*domain.Flashcard),
		states:       make(map[learnerStateKey]*domain.MemoryState),
		stagedStates: make(map[learnerStateKey]*domain.MemoryState),
	}
}

func (db *fakeDB) commit() {
	for k, v := range db.stagedStates {
		db.states[k] = v
	}
	db.logs = append(db.logs, db.stagedLogs...)
	db.discard()
}

func (db *fakeDB) discard() {
	db.stagedStates = make(map[learnerStateKey]*domain.MemoryState)
	db.stagedLogs = nil
}

// fakeTxRunner commits staged writes when the transaction function
// succeeds and discards them otherwise, mirroring the SQL runner.
type fakeTxRunner struct {
	db       *fakeDB
	beginErr error
}

func (r *fakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if r.beginErr != nil {
		return r.beginErr
	}
	if err := fn(ctx, nil); err != nil {
		r.db.discard()
		return err
	}
	r.db.commit()
	return nil
}

type fakeFlashcardStore struct {
	db *fakeDB
}

func (s *fakeFlashcardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	card, ok := s.db.cards[id]
	if !ok {
		return nil, store.ErrFlashcardNotFound
	}
	copied := *card
	return &copied, nil
}

func (s *fakeFlashcardStore) ListAvailable(
	_ context.Context,
	_ uuid.UUID,
	asOf time.Time,
) ([]*domain.Flashcard, error) {
	var cards []*domain.Flashcard
	for _, card := range s.db.cards {
		if card.AvailableOn(asOf) {
			copied := *card
			cards = append(cards, &copied)
		}
	}
	return cards, nil
}

func (s *fakeFlashcardStore) WithTx(_ *sql.Tx) store.FlashcardStore { return s }

type fakeMemoryStateStore struct {
	db *fakeDB
}

func (s *fakeMemoryStateStore) GetForUpdate(
	_ context.Context,
	learnerID, unitID uuid.UUID,
	subID string,
) (*domain.MemoryState, error) {
	key := learnerStateKey{learnerID: learnerID, unitID: unitID, subID: subID}
	if state, ok := s.db.stagedStates[key]; ok {
		copied := *state
		return &copied, nil
	}
	if state, ok := s.db.states[key]; ok {
		copied := *state
		return &copied, nil
	}
	return nil, store.ErrMemoryStateNotFound
}

func (s *fakeMemoryStateStore) ListForLearner(
	_ context.Context,
	learnerID uuid.UUID,
) ([]*domain.MemoryState, error) {
	var states []*domain.MemoryState
	for key, state := range s.db.states {
		if key.learnerID == learnerID {
			copied := *state
			states = append(states, &copied)
		}
	}
	return states, nil
}

func (s *fakeMemoryStateStore) Upsert(_ context.Context, state *domain.MemoryState) error {
	if s.db.upsertErr != nil {
		return s.db.upsertErr
	}
	if err := state.Validate(); err != nil {
		return err
	}
	copied := *state
	key := learnerStateKey{learnerID: state.LearnerID, unitID: state.UnitID, subID: state.SubID}
	s.db.stagedStates[key] = &copied
	return nil
}

func (s *fakeMemoryStateStore) WithTx(_ *sql.Tx) store.MemoryStateStore { return s }

type fakeReviewLogStore struct {
	db *fakeDB
}

func (s *fakeReviewLogStore) Append(_ context.Context, entry *domain.ReviewLogEntry) error {
	if s.db.appendErr != nil {
		return s.db.appendErr
	}
	copied := *entry
	s.db.stagedLogs = append(s.db.stagedLogs, &copied)
	return nil
}

func (s *fakeReviewLogStore) ListForLearner(
	_ context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]*domain.ReviewLogEntry, error) {
	var entries []*domain.ReviewLogEntry
	for i := len(s.db.logs) - 1; i >= 0; i-- {
		if s.db.logs[i].LearnerID != learnerID {
			continue
		}
		copied := *s.db.logs[i]
		entries = append(entries, &copied)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (s *fakeReviewLogStore) WithTx(_ *sql.Tx) store.ReviewLogStore { return s }
