package handler

import (
	"errors"
	"strconv"

	"restaurant_manager/logger"
	"restaurant_manager/model"
	"restaurant_manager/service"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment workflow over HTTP. The service is
// injected so tests can run it against an in-memory store.
type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// RegisterRoutes mounts the payment endpoints. The stats route is registered
// before /:id so "stats" is not parsed as a payment id.
func (h *PaymentHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/stats/overview", h.Stats)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
}

// List handles GET /payments with filtering, sorting and pagination.
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	input := model.ListPaymentsInput{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 50),
		Status:    c.Query("status"),
		Method:    c.Query("paymentMethod"),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "DESC"),
	}
	if v := c.QueryInt("orderId"); v > 0 {
		id := uint(v)
		input.OrderID = &id
	}

	page, err := h.svc.List(c.UserContext(), input)
	if err != nil {
		logger.Log.Error("list payments", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch payments", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page)
}

// Get handles GET /payments/:id.
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil || id <= 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Payment not found", nil)
	}

	payment, err := h.svc.Get(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Payment not found", nil)
		}
		logger.Log.Error("get payment", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch payment", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

// Create handles POST /payments.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var input model.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	payment, err := h.svc.Create(c.UserContext(), input)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			return utils.ValidationErrorResponse(c, vErr.Fields)
		case errors.Is(err, service.ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", nil)
		case errors.Is(err, service.ErrOrderAlreadyPaid):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order is already paid", nil)
		case errors.Is(err, service.ErrDuplicatePayment):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order already has a completed payment", nil)
		default:
			logger.Log.Error("create payment", zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process payment", err)
		}
	}
	return utils.SuccessResponseWithMessage(c, fiber.StatusCreated, "Payment processed successfully", payment)
}

// Stats handles GET /payments/stats/overview.
func (h *PaymentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.Stats(c.UserContext())
	if err != nil {
		logger.Log.Error("payment stats", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch payment statistics", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
