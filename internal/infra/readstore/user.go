package readstore

import (
	"context"

	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/pkg/pgconv"
	"realty-api/internal/usecase/queries"
	"realty-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `SELECT id, email, role, is_active FROM users WHERE id = $1`

	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, query, id).Scan(&view.ID, &view.Email, &view.Role, &view.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	const query = `SELECT id, email, role, is_active, password_hash FROM users WHERE email = $1`

	var view queries.AuthorizedUserView
	var passwordHash string
	err := r.db.QueryRow(ctx, query, email).Scan(&view.ID, &view.Email, &view.Role, &view.IsActive, &passwordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, passwordHash, nil
}

func (r *UserReadStore) ProfileByID(ctx context.Context, id uuid.UUID) (*queries.UserProfileView, error) {
	const query = `
		SELECT id, email, full_name, phone, role, last_login, is_active, created_at
		FROM users
		WHERE id = $1`

	var view queries.UserProfileView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Email, &view.FullName, &view.Phone,
		&view.Role, &view.LastLogin, &view.IsActive, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user profile", err)
	}
	return &view, nil
}

func (r *UserReadStore) List(ctx context.Context, limit int32) ([]*queries.UserProfileView, error) {
	const query = `
		SELECT id, email, full_name, phone, role, last_login, is_active, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	var views []*queries.UserProfileView
	for rows.Next() {
		var view queries.UserProfileView
		if err := rows.Scan(
			&view.ID, &view.Email, &view.FullName, &view.Phone,
			&view.Role, &view.LastLogin, &view.IsActive, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user rows", err)
	}
	return views, nil
}

// SnapshotByEmail backs command-side login validation.
func (r *UserReadStore) SnapshotByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	view, hash, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toUserSnapshot(view, hash), nil
}

func (r *UserReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `SELECT id, email, role, is_active, password_hash FROM users WHERE id = $1`

	var view queries.AuthorizedUserView
	var passwordHash string
	err := r.db.QueryRow(ctx, query, id).Scan(&view.ID, &view.Email, &view.Role, &view.IsActive, &passwordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUserSnapshot(&view, passwordHash), nil
}

func toUserSnapshot(view *queries.AuthorizedUserView, passwordHash string) *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:           view.ID,
		Email:        view.Email,
		PasswordHash: passwordHash,
		Role:         view.Role,
		IsActive:     view.IsActive,
	}
}
