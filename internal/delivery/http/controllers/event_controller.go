// Package controllers holds the HTTP controllers for events, categories,
// users, and orders.
package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"evently/internal/delivery/http/helpers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
)

// defaultInvalidationPath is signaled after event mutations when the caller
// does not name a cached page explicitly.
const defaultInvalidationPath = "/events"

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"image_url"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	Price         string    `json:"price"`
	IsFree        bool      `json:"is_free"`
	URL           string    `json:"url"`
	CategoryID    string    `json:"category_id"`
	Path          string    `json:"path"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.StartDateTime.IsZero() {
		errs = append(errs, "start_date_time is required")
	}
	if c.EndDateTime.IsZero() {
		errs = append(errs, "end_date_time is required")
	}
	if !c.StartDateTime.IsZero() && !c.EndDateTime.IsZero() && !c.EndDateTime.After(c.StartDateTime) {
		errs = append(errs, "end_date_time must be after start_date_time")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// Omitted fields are left untouched.
type UpdateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Location      *string    `json:"location"`
	ImageURL      *string    `json:"image_url"`
	StartDateTime *time.Time `json:"start_date_time"`
	EndDateTime   *time.Time `json:"end_date_time"`
	Price         *string    `json:"price"`
	IsFree        *bool      `json:"is_free"`
	URL           *string    `json:"url"`
	CategoryID    *string    `json:"category_id"`
	Path          string     `json:"path"`
}

// EventController serves the event query and mutation endpoints.
type EventController struct {
	Logger *slog.Logger
	Events domain.EventService
	Users  domain.UserService
}

func NewEventController(logger *slog.Logger, events domain.EventService, users domain.UserService) *EventController {
	return &EventController{
		Logger: logger,
		Events: events,
		Users:  users,
	}
}

// currentUser resolves the authenticated caller to a stored user. Writes a
// 401 and returns nil when the caller is unknown.
func (c *EventController) currentUser(w http.ResponseWriter, r *http.Request) *domain.User {
	externalKey, ok := middleware.ExternalKeyFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil
	}
	user, err := c.Users.GetByExternalKey(r.Context(), externalKey)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unknown user")
			return nil
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return nil
	}
	return user
}

func invalidationPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return defaultInvalidationPath
}

// List godoc
// @Summary List events
// @Description Search, filter, and paginate events. query matches the title case-insensitively; category filters by resolved category name. Events are newest first and embed organizer and category summaries.
// @Tags events
// @Produce json
// @Param query query string false "Title search text"
// @Param category query string false "Category name"
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (default 6)"
// @Success 200 {object} helpers.APIResponse "data contains items and total_pages"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r, 6)
	q := domain.EventQuery{
		Text:         r.URL.Query().Get("query"),
		CategoryName: r.URL.Query().Get("category"),
		Page:         params.Page,
		PageSize:     params.PageSize,
	}
	page, err := c.Events.List(r.Context(), q)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// Get godoc
// @Summary Get an event by ID
// @Description Returns the event with its organizer and category summaries embedded.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Events.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListRelated godoc
// @Summary List events related to an event
// @Description Returns other events in the same category, never including the event itself.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (default 3)"
// @Success 200 {object} helpers.APIResponse "data contains items and total_pages"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/related [get]
func (c *EventController) ListRelated(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Events.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if event.Category == nil {
		helpers.WriteJSONSuccess(w, http.StatusOK, &domain.EventPage{Items: []*domain.Event{}, TotalPages: 0})
		return
	}
	params := helpers.ParsePagination(r, 3)
	page, err := c.Events.ListRelated(r.Context(), event.Category.ID, eventID, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// Create godoc
// @Summary Create an event
// @Description Create an event organized by the authenticated user. Fails with 404 when the caller has no stored user record.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event draft"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user := c.currentUser(w, r)
	if user == nil {
		return
	}
	draft := &domain.EventDraft{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		ImageURL:      req.ImageURL,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		Price:         req.Price,
		IsFree:        req.IsFree,
		URL:           req.URL,
		CategoryID:    req.CategoryID,
	}
	event, err := c.Events.Create(r.Context(), user.ID, draft, invalidationPath(req.Path))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "organizer not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update an event
// @Description Apply a partial update to an event the authenticated user organizes. A missing event and a foreign event fail identically.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body UpdateEventRequest true "Event patch"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user := c.currentUser(w, r)
	if user == nil {
		return
	}
	patch := &domain.EventPatch{
		ID:            eventID,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		ImageURL:      req.ImageURL,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		Price:         req.Price,
		IsFree:        req.IsFree,
		URL:           req.URL,
		CategoryID:    req.CategoryID,
	}
	event, err := c.Events.Update(r.Context(), user.ID, patch, invalidationPath(req.Path))
	if err != nil {
		if errors.Is(err, domain.ErrNotFoundOrUnauthorized) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found or unauthorized")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Delete an event the authenticated user organizes. Deleting a missing event is a no-op. Orders for the event are left untouched.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param path query string false "Cached page to invalidate"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	user := c.currentUser(w, r)
	if user == nil {
		return
	}
	err := c.Events.Delete(r.Context(), user.ID, eventID, invalidationPath(r.URL.Query().Get("path")))
	if err != nil {
		if errors.Is(err, domain.ErrNotFoundOrUnauthorized) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found or unauthorized")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
