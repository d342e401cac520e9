package repositories

import (
	"context"
	"errors"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewUserRepositoryImpl(db *pgxpool.Pool) repositories.UserRepository {
	return &UserRepositoryImpl{
		db: db,
	}
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(
		ctx,
		`SELECT id, name, email, role, COALESCE(department, ''), is_active
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Department, &user.IsActive)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) ListIDsByRole(ctx context.Context, roles ...string) ([]string, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT id FROM users WHERE role = ANY($1) AND is_active = TRUE",
		roles,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (r *UserRepositoryImpl) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT id FROM users WHERE is_active = TRUE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIDs(rows)
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type SessionRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewSessionRepositoryImpl(db *pgxpool.Pool) repositories.SessionRepository {
	return &SessionRepositoryImpl{
		db: db,
	}
}

func (r *SessionRepositoryImpl) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{}
	err := r.db.QueryRow(
		ctx,
		`SELECT s.token, s.user_id, u.role, s.expires_at
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.token = $1`,
		token,
	).Scan(&session.Token, &session.UserID, &session.Role, &session.ExpiresAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorizedError(apperrors.ErrInvalidSession)
		}
		return nil, err
	}

	return session, nil
}
