package handler

import (
	"log/slog"
	"net/http"

	"storybook/internal/delivery/http/response"
	"storybook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order and payment handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// CreateOrderRequest represents the request body for placing an order.
// Pricing is resolved server-side from the format; an unrecognized format is
// not rejected here, it prices at the digital rate downstream.
type CreateOrderRequest struct {
	CustomizedBookID uuid.UUID `json:"customizedBookId" validate:"required"`
	Format           string    `json:"format"`
	Quantity         int       `json:"quantity" validate:"gte=0"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PayOrderRequest represents the request body for paying a pending order.
// PaymentDetails are accepted for forward compatibility; the simulated
// gateway does not inspect them.
type PayOrderRequest struct {
	Method         string         `json:"paymentMethod"`
	PaymentDetails map[string]any `json:"paymentDetails"`
}

// CreateOrder places a pending order for one customized book.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), &usecase.CreateOrderInput{
		UserID: userID,
		Items: []usecase.OrderItemInput{
			{
				CustomizedBookID: req.CustomizedBookID,
				Format:           req.Format,
				Quantity:         req.Quantity,
			},
		},
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// ListOrders returns the authenticated user's orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// GetOrder returns one owned order with its items.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListOrderItems returns the items of one owned order.
func (h *OrderHandler) ListOrderItems(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	items, err := h.orderUC.ListOrderItems(c.Request().Context(), orderID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items, "Order items retrieved successfully")
}

// UpdateOrderStatus moves an owned order to a new status.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), orderID, userID, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// PayOrder captures payment for a pending owned order.
func (h *OrderHandler) PayOrder(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req PayOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	output, err := h.orderUC.PayOrder(c.Request().Context(), &usecase.PayOrderInput{
		OrderID: orderID,
		UserID:  userID,
		Method:  req.Method,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Payment processed successfully")
}

// getUserID extracts the user ID from the context
func (h *OrderHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	return userID, nil
}
