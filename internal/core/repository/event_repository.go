package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/db/adapter"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository все операции ограничены владельцем события
type EventRepository interface {
	Create(ctx context.Context, event entity.Event) (entity.Event, error)
	Get(ctx context.Context, id, userID int64) (entity.Event, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Event, error)
	Update(ctx context.Context, event entity.Event) (entity.Event, error)
	Delete(ctx context.Context, id, userID int64) error
}

type eventRepository struct {
	adapter *adapter.SQLAdapter
}

func NewEventRepository(adapter *adapter.SQLAdapter) EventRepository {
	return &eventRepository{adapter: adapter}
}

func (r *eventRepository) Create(ctx context.Context, event entity.Event) (entity.Event, error) {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	id, err := r.adapter.Create(ctx, event, eventsTable)
	if err != nil {
		return entity.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	event.ID = id
	return event, nil
}

func (r *eventRepository) Get(ctx context.Context, id, userID int64) (entity.Event, error) {
	var event entity.Event
	err := r.adapter.Get(ctx, &event, eventsTable, ownedBy(id, userID))
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return entity.Event{}, ErrEventNotFound
		}
		return entity.Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *eventRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Event, error) {
	events := []entity.Event{}
	err := r.adapter.List(ctx, &events, eventsTable,
		adapter.Condition{Equal: sq.Eq{"user_id": userID}},
		"date_start", "id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []entity.Event{}
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event entity.Event) (entity.Event, error) {
	event.UpdatedAt = time.Now().UTC()

	affected, err := r.adapter.Update(ctx, eventsTable, map[string]interface{}{
		"name":        event.Name,
		"description": event.Description,
		"date_start":  event.DateStart,
		"date_finish": event.DateFinish,
		"updated_at":  event.UpdatedAt,
	}, ownedBy(event.ID, event.UserID))
	if err != nil {
		return entity.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	if affected == 0 {
		return entity.Event{}, ErrEventNotFound
	}

	return event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id, userID int64) error {
	affected, err := r.adapter.Delete(ctx, eventsTable, ownedBy(id, userID))
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func ownedBy(id, userID int64) adapter.Condition {
	return adapter.Condition{Equal: sq.Eq{"id": id, "user_id": userID}}
}
