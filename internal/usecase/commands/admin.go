package commands

import (
	"context"

	"github.com/google/uuid"

	"realty-api/internal/infra"
	"realty-api/internal/usecase/shared"
)

type AdminCommands interface {
	// SetUserActive suspends or reinstates an account. A suspended user
	// keeps their data but can no longer authenticate.
	SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error
}

type adminCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewAdminCommands(uow shared.UnitOfWork) AdminCommands {
	return &adminCommandsImpl{uow: uow}
}

func (a *adminCommandsImpl) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Users().SetActive(ctx, tx.DB(), userID, active)
		if err != nil && infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	})
}
