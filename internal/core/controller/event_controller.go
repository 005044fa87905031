package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
	"gitlab.com/s.izotov81/eventapi/internal/core/service"
	"gitlab.com/s.izotov81/eventapi/pkg/responder"
	"go.uber.org/zap"
)

type EventController struct {
	eventService *service.EventService
	responder    responder.Responder
	logger       *zap.Logger
}

func NewEventController(eventService *service.EventService, responder responder.Responder, logger *zap.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		responder:    responder,
		logger:       logger,
	}
}

// Index godoc
// @Summary List own events
// @Description События текущего пользователя в порядке date_start
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} entity.Event
// @Failure 401 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/events [get]
func (c *EventController) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}

	events, err := c.eventService.List(r.Context(), user.ID)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Respond(w, http.StatusOK, events)
}

// Show godoc
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Success 200 {object} entity.Event
// @Failure 401 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/events/{id} [get]
func (c *EventController) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}

	event, err := c.eventService.Get(r.Context(), user.ID, id)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Respond(w, http.StatusOK, event)
}

// Create godoc
// @Summary Create event
// @Description Создает событие текущего пользователя. Тело может быть обернуто в {"event": {...}}
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body entity.EventRequest true "Event data"
// @Success 201 {object} entity.Event
// @Header 201 {string} Location "/v1/events/{id}"
// @Failure 400 {object} responder.ErrorResponse
// @Failure 401 {object} responder.ErrorResponse
// @Failure 422 {object} responder.ValidationResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}

	var req entity.EventRequest
	if err := c.responder.Decode(r, "event", &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	event, err := c.eventService.Create(r.Context(), user.ID, req)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/events/%d", event.ID))
	c.responder.Respond(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update event
// @Description Частичное обновление; результат проверяется целиком
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Param request body entity.EventRequest true "Event data"
// @Success 200 {object} entity.Event
// @Failure 400 {object} responder.ErrorResponse
// @Failure 401 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Failure 422 {object} responder.ValidationResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/events/{id} [put]
// @Router /v1/events/{id} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}

	var req entity.EventRequest
	if err := c.responder.Decode(r, "event", &req); err != nil {
		c.responder.Error(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	event, err := c.eventService.Update(r.Context(), user.ID, id, req)
	if err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Respond(w, http.StatusOK, event)
}

// Destroy godoc
// @Summary Delete event
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Success 200 {object} responder.MessageResponse
// @Failure 401 {object} responder.ErrorResponse
// @Failure 404 {object} responder.ErrorResponse
// @Failure 500 {object} responder.ErrorResponse
// @Router /v1/events/{id} [delete]
func (c *EventController) Destroy(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(c.responder, w, r)
	if !ok {
		return
	}
	id, ok := c.eventID(w, r)
	if !ok {
		return
	}

	if err := c.eventService.Delete(r.Context(), user.ID, id); err != nil {
		respondError(c.responder, c.logger, w, r, err)
		return
	}

	c.responder.Message(w, http.StatusOK, "Event was successfully destroyed.")
}

// eventID разбирает {id}; нечисловой id отвечает 404, как отсутствующее событие
func (c *EventController) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		c.responder.Error(w, http.StatusNotFound, msgEventNotFound)
		return 0, false
	}
	return id, true
}
