package commands

import (
	"context"

	"github.com/google/uuid"

	reqdto "realty-api/internal/handler/dto/request"
	"realty-api/internal/infra"
	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/shared"
)

var ErrNotPropertyOwner = errs.New("only the listing owner may do this")

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

type PropertyCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, req reqdto.CreatePropertyRequest) (uuid.UUID, error)
	Update(ctx context.Context, actor Actor, slug string, req reqdto.UpdatePropertyRequest) error
	Delete(ctx context.Context, actor Actor, slug string) error
	UpsertReport(ctx context.Context, actor Actor, slug string, req reqdto.UpsertReportRequest) error
	SetFeatured(ctx context.Context, slug string, featured bool) error
}

type propertyCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPropertyCommands(uow shared.UnitOfWork) PropertyCommands {
	return &propertyCommandsImpl{uow: uow}
}

func (p *propertyCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, req reqdto.CreatePropertyRequest) (uuid.UUID, error) {
	prop, err := req.ToDomain(ownerID)
	if err != nil {
		return uuid.Nil, err
	}

	var propertyID uuid.UUID
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Properties().Create(ctx, tx.DB(), prop)
		if createErr != nil {
			return createErr
		}
		propertyID = id

		if len(req.Images) > 0 {
			if imgErr := tx.Properties().ReplaceImages(ctx, tx.DB(), id, req.Images); imgErr != nil {
				return imgErr
			}
		}
		if len(req.Features) > 0 {
			if featErr := tx.Properties().ReplaceFeatures(ctx, tx.DB(), id, req.Features); featErr != nil {
				return featErr
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return propertyID, nil
}

func (p *propertyCommandsImpl) Update(ctx context.Context, actor Actor, slug string, req reqdto.UpdatePropertyRequest) error {
	params, err := req.ToParams()
	if err != nil {
		return err
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		propertyID, authErr := p.authorize(ctx, tx, actor, slug)
		if authErr != nil {
			return authErr
		}
		if updErr := tx.Properties().Update(ctx, tx.DB(), propertyID, params); updErr != nil {
			return updErr
		}
		if req.Images != nil {
			if imgErr := tx.Properties().ReplaceImages(ctx, tx.DB(), propertyID, req.Images); imgErr != nil {
				return imgErr
			}
		}
		if req.Features != nil {
			if featErr := tx.Properties().ReplaceFeatures(ctx, tx.DB(), propertyID, req.Features); featErr != nil {
				return featErr
			}
		}
		return nil
	})
}

func (p *propertyCommandsImpl) Delete(ctx context.Context, actor Actor, slug string) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		propertyID, authErr := p.authorize(ctx, tx, actor, slug)
		if authErr != nil {
			return authErr
		}
		return tx.Properties().Delete(ctx, tx.DB(), propertyID)
	})
}

func (p *propertyCommandsImpl) UpsertReport(ctx context.Context, actor Actor, slug string, req reqdto.UpsertReportRequest) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		propertyID, authErr := p.authorize(ctx, tx, actor, slug)
		if authErr != nil {
			return authErr
		}
		return tx.Properties().UpsertReport(ctx, tx.DB(), propertyID, req.ReportType, req.DocumentURL)
	})
}

func (p *propertyCommandsImpl) SetFeatured(ctx context.Context, slug string, featured bool) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().PropertyBySlug(ctx, slug)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		return tx.Properties().SetFeatured(ctx, tx.DB(), snap.ID, featured)
	})
}

func (p *propertyCommandsImpl) authorize(ctx context.Context, tx shared.Tx, actor Actor, slug string) (uuid.UUID, error) {
	snap, err := tx.Reads().PropertyBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrPropertyNotFound
		}
		return uuid.Nil, err
	}
	if !actor.IsAdmin && snap.OwnerID != actor.ID {
		return uuid.Nil, ErrNotPropertyOwner
	}
	return snap.ID, nil
}
