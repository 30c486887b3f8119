package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/watch"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=inventory
type Repository interface {
	// ApplyDelta atomically finds-or-creates the item named name and adds
	// delta to its quantity, overwriting unit and cost. A created item gets
	// DefaultThreshold. The whole operation is a single conditional upsert so
	// concurrent reconciliations for the same name cannot lose updates.
	ApplyDelta(ctx context.Context, userID, name, unit string, cost, delta decimal.Decimal) (*Item, error)

	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, userID string, id uuid.UUID) (*Item, error)
	GetItemByName(ctx context.Context, userID, name string) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, userID string, id uuid.UUID) error
	ListItems(ctx context.Context, userID string) ([]*Item, error)
}

type Service struct {
	repo Repository
	hub  *watch.Hub
}

func NewService(repo Repository, hub *watch.Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// Reconcile applies a ledger entry's signed quantity delta to the item named
// name, creating it on first use. Unit and cost are last-write-wins from the
// incoming entry. Quantity has no floor: a negative result signals an
// oversell the caller must surface, never clamp.
func (s *Service) Reconcile(ctx context.Context, userID, name, unit string, cost, delta decimal.Decimal) error {
	if name == "" {
		return fmt.Errorf("%w: item name", ErrMissingField)
	}

	item, err := s.repo.ApplyDelta(ctx, userID, name, unit, cost, delta)
	if err != nil {
		return fmt.Errorf("reconciling %q: %w", name, err)
	}

	s.hub.Publish(userID, watch.Event{Collection: watch.CollectionInventory, Action: watch.ActionUpdated, Payload: item})

	return nil
}

type DefinitionParams struct {
	Name      string
	Unit      string
	Cost      decimal.Decimal
	Threshold decimal.Decimal
}

// UpsertDefinition creates or edits item metadata without touching quantity.
//
// With existingID nil it creates a new item with quantity zero, failing with
// ErrDuplicateName when the name is taken. With existingID set it updates
// unit, cost and threshold in place; the name is not renameable once set.
func (s *Service) UpsertDefinition(ctx context.Context, userID string, params DefinitionParams, existingID *uuid.UUID) (*Item, error) {
	if params.Name == "" || params.Unit == "" {
		return nil, fmt.Errorf("%w: name and unit are required", ErrMissingField)
	}

	if params.Cost.IsNegative() || params.Threshold.IsNegative() {
		return nil, fmt.Errorf("%w: cost and threshold must be non-negative", ErrMissingField)
	}

	if existingID != nil {
		item, err := s.repo.GetItem(ctx, userID, *existingID)
		if err != nil {
			return nil, err
		}

		item.Unit = params.Unit
		item.Cost = params.Cost
		item.Threshold = params.Threshold

		if err := s.repo.UpdateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("updating item definition: %w", err)
		}

		s.hub.Publish(userID, watch.Event{Collection: watch.CollectionInventory, Action: watch.ActionUpdated, Payload: item})

		return item, nil
	}

	if _, err := s.repo.GetItemByName(ctx, userID, params.Name); err == nil {
		return nil, fmt.Errorf("%q: %w", params.Name, ErrDuplicateName)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking for duplicate name: %w", err)
	}

	item := &Item{
		UserID:    userID,
		Name:      params.Name,
		Quantity:  decimal.Zero,
		Unit:      params.Unit,
		Cost:      params.Cost,
		Threshold: params.Threshold,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("creating item definition: %w", err)
	}

	s.hub.Publish(userID, watch.Event{Collection: watch.CollectionInventory, Action: watch.ActionCreated, Payload: item})

	return item, nil
}

// Delete removes the item unconditionally; historical ledger entries keep
// referring to the name. Deleting a missing id fails with ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, userID, id); err != nil {
		return err
	}

	s.hub.Publish(userID, watch.Event{Collection: watch.CollectionInventory, Action: watch.ActionDeleted, Payload: id})

	return nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Item, error) {
	return s.repo.ListItems(ctx, userID)
}
