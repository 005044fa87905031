package service

import (
	"context"

	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/repository"
	"gitlab.com/s.izotov81/eventapi/internal/core/validation"
	"go.uber.org/zap"
)

var ErrEventNotFound = repository.ErrEventNotFound

// EventService события, доступные только их владельцу
type EventService struct {
	events    repository.EventRepository
	validator *validation.Validator
	logger    *zap.Logger
}

func NewEventService(events repository.EventRepository, validator *validation.Validator, logger *zap.Logger) *EventService {
	return &EventService{
		events:    events,
		validator: validator,
		logger:    logger.Named("events"),
	}
}

func (s *EventService) List(ctx context.Context, userID int64) ([]entity.Event, error) {
	return s.events.ListByUser(ctx, userID)
}

func (s *EventService) Get(ctx context.Context, userID, id int64) (entity.Event, error) {
	return s.events.Get(ctx, id, userID)
}

func (s *EventService) Create(ctx context.Context, userID int64, req entity.EventRequest) (entity.Event, error) {
	event := entity.Event{UserID: userID}
	if err := s.apply(&event, req, false); err != nil {
		return entity.Event{}, err
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return entity.Event{}, err
	}

	s.logger.Debug("event created", zap.Int64("event_id", created.ID), zap.Int64("user_id", userID))
	return created, nil
}

// Update накладывает присланные поля на сохраненное событие и проверяет результат
func (s *EventService) Update(ctx context.Context, userID, id int64, req entity.EventRequest) (entity.Event, error) {
	event, err := s.events.Get(ctx, id, userID)
	if err != nil {
		return entity.Event{}, err
	}

	if err := s.apply(&event, req, true); err != nil {
		return entity.Event{}, err
	}

	return s.events.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, userID, id int64) error {
	return s.events.Delete(ctx, id, userID)
}

// apply переносит поля запроса в событие. При partial отсутствующие
// даты не проверяются, при создании они обязательны.
func (s *EventService) apply(event *entity.Event, req entity.EventRequest, partial bool) error {
	errs := validation.Errors{}

	if event.UserID == 0 {
		errs.Add("user_id", validation.MsgBlank)
	}
	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}

	datesValid := true
	if req.DateStart != nil || !partial {
		ts, ok := s.validator.Timestamp(errs, "date_start", deref(req.DateStart))
		if ok {
			event.DateStart = ts
		}
		datesValid = datesValid && ok
	}
	if req.DateFinish != nil || !partial {
		ts, ok := s.validator.Timestamp(errs, "date_finish", deref(req.DateFinish))
		if ok {
			event.DateFinish = ts
		}
		datesValid = datesValid && ok
	}

	if datesValid {
		s.validator.Chronology(errs, event.DateStart, event.DateFinish)
	}

	return errs.Err()
}
