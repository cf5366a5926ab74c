package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	gocache "github.com/patrickmn/go-cache"
)

// OwnerRepo implements ports.OwnerDirectory over the profiles and projects tables.
// Lookups are cached briefly since every wallet read consults them.
type OwnerRepo struct {
	pool  Pool
	cache *gocache.Cache
}

// NewOwnerRepo creates an OwnerRepo whose lookups live for ttl.
func NewOwnerRepo(pool Pool, ttl time.Duration) *OwnerRepo {
	return &OwnerRepo{
		pool:  pool,
		cache: gocache.New(ttl, 2*ttl),
	}
}

var _ ports.OwnerDirectory = (*OwnerRepo)(nil)

// CanManage: a profile manages itself, a project is managed by its owning profile.
func (r *OwnerRepo) CanManage(ctx context.Context, userID uuid.UUID, owner domain.Owner) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	if owner.Type == domain.OwnerProfile {
		return owner.ID == userID, nil
	}

	projectOwner, err := r.projectOwner(ctx, owner.ID)
	if err != nil {
		return false, err
	}
	return projectOwner != nil && *projectOwner == userID, nil
}

// IsPublic reports the owner's visibility flag. Unknown owners are private.
func (r *OwnerRepo) IsPublic(ctx context.Context, owner domain.Owner) (bool, error) {
	key := "public:" + owner.String()
	if v, ok := r.cache.Get(key); ok {
		return v.(bool), nil
	}

	table := "profiles"
	if owner.Type == domain.OwnerProject {
		table = "projects"
	}

	var public bool
	err := r.pool.QueryRow(ctx, `SELECT is_public FROM `+table+` WHERE id = $1`, owner.ID).Scan(&public)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("get %s visibility: %w", owner.Type, err)
	}

	r.cache.Set(key, public, gocache.DefaultExpiration)
	return public, nil
}

func (r *OwnerRepo) projectOwner(ctx context.Context, projectID uuid.UUID) (*uuid.UUID, error) {
	key := "project-owner:" + projectID.String()
	if v, ok := r.cache.Get(key); ok {
		return v.(*uuid.UUID), nil
	}

	var ownerID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT owner_profile_id FROM projects WHERE id = $1`, projectID).Scan(&ownerID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get project owner: %w", err)
		}
		r.cache.Set(key, (*uuid.UUID)(nil), gocache.DefaultExpiration)
		return nil, nil
	}

	r.cache.Set(key, &ownerID, gocache.DefaultExpiration)
	return &ownerID, nil
}
