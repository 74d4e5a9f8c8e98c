package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"evently/internal/delivery/http/helpers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
)

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	EventID     string `json:"event_id"`
	TotalAmount string `json:"total_amount"`
	IsFree      bool   `json:"is_free"`
}

func (o CreateOrderRequest) Validate() []string {
	var errs []string
	if o.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if !o.IsFree && o.TotalAmount == "" {
		errs = append(errs, "total_amount is required for paid orders")
	}
	return errs
}

// OrderController serves the checkout endpoints.
type OrderController struct {
	Logger *slog.Logger
	Orders domain.OrderService
	Users  domain.UserService
	Events domain.EventService
}

func NewOrderController(logger *slog.Logger, orders domain.OrderService, users domain.UserService, events domain.EventService) *OrderController {
	return &OrderController{Logger: logger, Orders: orders, Users: users, Events: events}
}

// Create godoc
// @Summary Place an order
// @Description Records a completed checkout for the authenticated user. Free events record a zero amount.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body CreateOrderRequest true "Checkout details"
// @Success 201 {object} helpers.APIResponse "data contains the created order"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /orders [post]
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	externalKey, ok := middleware.ExternalKeyFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	buyer, err := c.Users.GetByExternalKey(r.Context(), externalKey)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unknown user")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	order, err := c.Orders.Create(r.Context(), req.EventID, buyer.ID, req.TotalAmount, req.IsFree)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid order")
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, order)
}

// ListByEvent godoc
// @Summary List orders for an event
// @Description Lists orders for an event the authenticated user organizes, optionally filtered by buyer name.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param search query string false "Buyer name search text"
// @Success 200 {object} helpers.APIResponse "data contains the orders, newest first"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/orders [get]
func (c *OrderController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	externalKey, ok := middleware.ExternalKeyFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Users.GetByExternalKey(r.Context(), externalKey)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unknown user")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
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
	if event.Organizer == nil || event.Organizer.ID != user.ID {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found or unauthorized")
		return
	}
	orders, err := c.Orders.ListByEvent(r.Context(), eventID, r.URL.Query().Get("search"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, orders)
}
