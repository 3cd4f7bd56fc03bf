package commands

import (
	"context"

	reqdto "realty-api/internal/handler/dto/request"
	"realty-api/internal/usecase/shared"
)

type SettingsCommands interface {
	UpdateUnlockPrice(ctx context.Context, req reqdto.UpdateUnlockPriceRequest) error
}

type settingsCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewSettingsCommands(uow shared.UnitOfWork) SettingsCommands {
	return &settingsCommandsImpl{uow: uow}
}

func (s *settingsCommandsImpl) UpdateUnlockPrice(ctx context.Context, req reqdto.UpdateUnlockPriceRequest) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Settings().UpdateUnlockPrice(ctx, tx.DB(), req.UnlockPriceCents, req.Currency)
	})
}
