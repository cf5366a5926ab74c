// Package memory is a process-local storage driver with the same invariants as the
// postgres driver. It serializes all write transactions behind one lock.
package memory

import (
	"context"
	"errors"
	"sync"

	"orangecat-wallets/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrTxDone is returned when a finished transaction is used again.
var ErrTxDone = errors.New("memory: transaction already committed or rolled back")

type project struct {
	ownerProfileID uuid.UUID
	public         bool
}

// Store holds every table of the memory driver.
type Store struct {
	mu        sync.RWMutex
	wallets   map[uuid.UUID]*domain.Wallet
	addresses map[uuid.UUID]map[addressKey]domain.WalletAddress
	profiles  map[uuid.UUID]bool // id -> is_public
	projects  map[uuid.UUID]project
	audit     []domain.AuditLog

	// writer admits one transaction at a time.
	writer chan struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		wallets:   make(map[uuid.UUID]*domain.Wallet),
		addresses: make(map[uuid.UUID]map[addressKey]domain.WalletAddress),
		profiles:  make(map[uuid.UUID]bool),
		projects:  make(map[uuid.UUID]project),
		writer:    make(chan struct{}, 1),
	}
}

// PutProfile registers or updates a profile.
func (s *Store) PutProfile(id uuid.UUID, public bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[id] = public
}

// PutProject registers or updates a project owned by ownerProfileID.
func (s *Store) PutProject(id, ownerProfileID uuid.UUID, public bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[id] = project{ownerProfileID: ownerProfileID, public: public}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Name returns the health check name.
func (s *Store) Name() string {
	return "memory"
}

// Transactor implements ports.DBTransactor for the memory store.
type Transactor struct {
	store *Store
}

// NewTransactor creates a transactor over store.
func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

// Begin waits for exclusive write access or ctx cancellation.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	select {
	case t.store.writer <- struct{}{}:
		return &memTx{store: t.store}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// memTx satisfies pgx.Tx for the repositories in this package. Only Commit and
// Rollback are meaningful; the embedded nil interface panics on anything else.
type memTx struct {
	pgx.Tx
	store *Store
	undo  []func()
	done  bool
}

func (tx *memTx) Commit(context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.finish()
	return nil
}

// Rollback reverts every write made through tx, newest first. It is a no-op after Commit.
func (tx *memTx) Rollback(context.Context) error {
	if tx.done {
		return nil
	}
	tx.store.mu.Lock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.store.mu.Unlock()
	tx.finish()
	return nil
}

func (tx *memTx) finish() {
	tx.done = true
	tx.undo = nil
	<-tx.store.writer
}

// onRollback records how to revert a write. Callers hold store.mu.
func (tx *memTx) onRollback(fn func()) {
	tx.undo = append(tx.undo, fn)
}

// asTx unwraps a transaction started by this package's Transactor.
func asTx(tx pgx.Tx) (*memTx, error) {
	mt, ok := tx.(*memTx)
	if !ok || mt == nil {
		return nil, errors.New("memory: transaction was not started by the memory transactor")
	}
	if mt.done {
		return nil, ErrTxDone
	}
	return mt, nil
}

func cloneWallet(w *domain.Wallet) *domain.Wallet {
	c := *w
	if w.BalanceUpdatedAt != nil {
		t := *w.BalanceUpdatedAt
		c.BalanceUpdatedAt = &t
	}
	return &c
}
