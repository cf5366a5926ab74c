package memory

import (
	"context"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
)

// OwnerDirectory implements ports.OwnerDirectory over the store's profiles and projects.
type OwnerDirectory struct {
	store *Store
}

var _ ports.OwnerDirectory = (*OwnerDirectory)(nil)

func NewOwnerDirectory(store *Store) *OwnerDirectory {
	return &OwnerDirectory{store: store}
}

// CanManage: a profile manages itself, a project is managed by its owning profile.
func (d *OwnerDirectory) CanManage(_ context.Context, userID uuid.UUID, owner domain.Owner) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	if owner.Type == domain.OwnerProfile {
		return owner.ID == userID, nil
	}

	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	p, ok := d.store.projects[owner.ID]
	return ok && p.ownerProfileID == userID, nil
}

// IsPublic reports the owner's visibility flag. Unknown owners are private.
func (d *OwnerDirectory) IsPublic(_ context.Context, owner domain.Owner) (bool, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	if owner.Type == domain.OwnerProject {
		return d.store.projects[owner.ID].public, nil
	}
	return d.store.profiles[owner.ID], nil
}
