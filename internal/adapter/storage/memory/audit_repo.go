package memory

import (
	"context"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
)

const maxAuditEntries = 10_000

type auditRepo struct {
	store *Store
}

// NewAuditRepository keeps the most recent audit entries in memory.
func NewAuditRepository(store *Store) ports.AuditRepository {
	return &auditRepo{store: store}
}

func (r *auditRepo) Create(_ context.Context, log *domain.AuditLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audit = append(s.audit, *log)
	if len(s.audit) > maxAuditEntries {
		s.audit = s.audit[len(s.audit)-maxAuditEntries:]
	}
	return nil
}

// AuditEntries returns a copy of the stored audit entries, oldest first.
func (s *Store) AuditEntries() []domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditLog, len(s.audit))
	copy(out, s.audit)
	return out
}
