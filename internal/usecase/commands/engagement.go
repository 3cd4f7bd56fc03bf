package commands

import (
	"context"

	"github.com/google/uuid"

	"realty-api/internal/domain/inspection"
	reqdto "realty-api/internal/handler/dto/request"
	"realty-api/internal/infra"
	"realty-api/internal/pkg/clock"
	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/shared"
)

var (
	ErrBookmarkNotFound      = errs.New("bookmark not found")
	ErrInspectionNotFound    = errs.New("inspection not found")
	ErrInspectionForbidden   = errs.New("not allowed to manage this inspection")
	ErrInspectionStateFrozen = errs.New("inspection can no longer change state")
)

type EngagementCommands interface {
	AddBookmark(ctx context.Context, userID uuid.UUID, slug string) error
	RemoveBookmark(ctx context.Context, userID uuid.UUID, slug string) error
	RequestInspection(ctx context.Context, userID uuid.UUID, slug string, req reqdto.CreateInspectionRequest) (uuid.UUID, error)
	// UpdateInspectionStatus lets the listing owner or an admin confirm
	// or cancel, and the requester cancel their own booking.
	UpdateInspectionStatus(ctx context.Context, actor Actor, inspectionID uuid.UUID, req reqdto.UpdateInspectionStatusRequest) error
}

type engagementCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewEngagementCommands(uow shared.UnitOfWork, clk clock.Clock) EngagementCommands {
	return &engagementCommandsImpl{uow: uow, clock: clk}
}

func (e *engagementCommandsImpl) AddBookmark(ctx context.Context, userID uuid.UUID, slug string) error {
	return e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		prop, err := tx.Reads().PropertyBySlug(ctx, slug)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		return tx.Bookmarks().Add(ctx, tx.DB(), userID, prop.ID)
	})
}

func (e *engagementCommandsImpl) RemoveBookmark(ctx context.Context, userID uuid.UUID, slug string) error {
	return e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		prop, err := tx.Reads().PropertyBySlug(ctx, slug)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		if err := tx.Bookmarks().Remove(ctx, tx.DB(), userID, prop.ID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookmarkNotFound
			}
			return err
		}
		return nil
	})
}

func (e *engagementCommandsImpl) RequestInspection(ctx context.Context, userID uuid.UUID, slug string, req reqdto.CreateInspectionRequest) (uuid.UUID, error) {
	var inspectionID uuid.UUID
	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		prop, err := tx.Reads().PropertyBySlug(ctx, slug)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}

		insp, err := inspection.NewInspection(prop.ID, userID, req.ScheduledAt, req.Notes, e.clock.Now())
		if err != nil {
			return err
		}

		id, err := tx.Inspections().Create(ctx, tx.DB(), insp)
		if err != nil {
			return err
		}
		inspectionID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return inspectionID, nil
}

func (e *engagementCommandsImpl) UpdateInspectionStatus(ctx context.Context, actor Actor, inspectionID uuid.UUID, req reqdto.UpdateInspectionStatusRequest) error {
	target, err := inspection.NewStatus(req.Status)
	if err != nil {
		return err
	}

	return e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().InspectionByID(ctx, inspectionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrInspectionNotFound
			}
			return err
		}

		prop, err := tx.Reads().PropertyByID(ctx, snap.PropertyID)
		if err != nil {
			return err
		}

		if err := authorizeInspectionChange(actor, snap, prop.OwnerID, target); err != nil {
			return err
		}

		current, err := inspection.NewStatus(snap.Status)
		if err != nil {
			return err
		}
		if !canTransition(current, target) {
			return ErrInspectionStateFrozen
		}

		return tx.Inspections().UpdateStatus(ctx, tx.DB(), inspectionID, target)
	})
}

func authorizeInspectionChange(actor Actor, snap *shared.InspectionSnapshot, ownerID uuid.UUID, target inspection.Status) error {
	if actor.IsAdmin || actor.ID == ownerID {
		return nil
	}
	// Requesters may only cancel their own booking
	if actor.ID == snap.UserID && target == inspection.StatusCancelled {
		return nil
	}
	return ErrInspectionForbidden
}

func canTransition(current, target inspection.Status) bool {
	switch target {
	case inspection.StatusConfirmed:
		return current == inspection.StatusRequested
	case inspection.StatusCancelled:
		return current != inspection.StatusCancelled
	default:
		return false
	}
}
