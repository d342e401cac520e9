package interactor

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
)

type PaymentSourceInteractor struct {
	sourceRepo repositories.PaymentSourceRepository
}

func NewPaymentSourceInteractor(repository repositories.PaymentSourceRepository) *PaymentSourceInteractor {
	return &PaymentSourceInteractor{sourceRepo: repository}
}

func (s *PaymentSourceInteractor) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PaymentSourceInteractor) GetByID(ctx context.Context, id string) (*models.PaymentSource, error) {
	return s.sourceRepo.GetByID(ctx, id)
}
