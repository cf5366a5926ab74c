package postgres

import (
	"context"
	"testing"
	"time"

	"orangecat-wallets/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerRepo_CanManage_Profile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOwnerRepo(mock, time.Minute)
	user := uuid.New()

	ok, err := repo.CanManage(context.Background(), user, domain.Owner{Type: domain.OwnerProfile, ID: user})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CanManage(context.Background(), user, domain.Owner{Type: domain.OwnerProfile, ID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.CanManage(context.Background(), uuid.Nil, domain.Owner{Type: domain.OwnerProfile, ID: uuid.Nil})
	require.NoError(t, err)
	assert.False(t, ok, "anonymous callers manage nothing")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerRepo_CanManage_ProjectIsCached(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOwnerRepo(mock, time.Minute)
	user := uuid.New()
	project := domain.Owner{Type: domain.OwnerProject, ID: uuid.New()}

	mock.ExpectQuery("SELECT owner_profile_id FROM projects WHERE id").
		WithArgs(project.ID).
		WillReturnRows(pgxmock.NewRows([]string{"owner_profile_id"}).AddRow(user))

	for i := 0; i < 3; i++ {
		ok, err := repo.CanManage(context.Background(), user, project)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.CanManage(context.Background(), uuid.New(), project)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerRepo_CanManage_UnknownProject(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOwnerRepo(mock, time.Minute)
	project := domain.Owner{Type: domain.OwnerProject, ID: uuid.New()}

	mock.ExpectQuery("SELECT owner_profile_id FROM projects").
		WithArgs(project.ID).
		WillReturnRows(pgxmock.NewRows([]string{"owner_profile_id"}))

	ok, err := repo.CanManage(context.Background(), uuid.New(), project)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOwnerRepo_IsPublic(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOwnerRepo(mock, time.Minute)
	profile := domain.Owner{Type: domain.OwnerProfile, ID: uuid.New()}
	project := domain.Owner{Type: domain.OwnerProject, ID: uuid.New()}

	mock.ExpectQuery("SELECT is_public FROM profiles").
		WithArgs(profile.ID).
		WillReturnRows(pgxmock.NewRows([]string{"is_public"}).AddRow(true))
	mock.ExpectQuery("SELECT is_public FROM projects").
		WithArgs(project.ID).
		WillReturnRows(pgxmock.NewRows([]string{"is_public"}).AddRow(false))

	public, err := repo.IsPublic(context.Background(), profile)
	require.NoError(t, err)
	assert.True(t, public)

	public, err = repo.IsPublic(context.Background(), project)
	require.NoError(t, err)
	assert.False(t, public)

	// second read served from cache
	public, err = repo.IsPublic(context.Background(), profile)
	require.NoError(t, err)
	assert.True(t, public)

	assert.NoError(t, mock.ExpectationsWereMet())
}
