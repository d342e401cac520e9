package repositories

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ListIDsByRole returns active user ids holding any of the given roles.
	ListIDsByRole(ctx context.Context, roles ...string) ([]string, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type SessionRepository interface {
	GetByToken(ctx context.Context, token string) (*models.Session, error)
}
