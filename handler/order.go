package handler

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"restaurant_manager/config"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// allowed forward transitions per status; CANCELLED and PAID are terminal
var orderTransitions = map[string][]string{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed: {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusReady, model.OrderStatusCancelled},
	model.OrderStatusReady:     {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered: {model.OrderStatusPaid},
}

func canTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func GetOrders(c *fiber.Ctx) error {
	filterInput := new(model.FilterOrder)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Order{})
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.TableNumber != nil {
		condition = condition.Where("table_number = ?", *filterInput.TableNumber)
	}
	if filterInput.CustomerID != nil {
		condition = condition.Where("customer_id = ?", *filterInput.CustomerID)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var orders []model.Order
	if err := condition.
		Preload("Customer").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch orders", err)
	}

	response := &model.ResponseCustom{
		Rows:       orders,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetOrderById(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)

	var order model.Order
	err := database.DB.
		Preload("Customer").
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Payments").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch order", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// CreateOrder validates the requested menu items, snapshots their prices and
// computes the total server side.
func CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateOrder").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	db := database.DB

	if input.CustomerID != nil {
		var customer model.Customer
		if err := db.First(&customer, *input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	order := model.Order{
		PublicCode:  utils.NewPublicCode("ORD"),
		CustomerID:  input.CustomerID,
		TableNumber: input.TableNumber,
		Status:      model.OrderStatusPending,
		Notes:       input.Notes,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range input.Items {
			var menuItem model.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("menu item %d not found", item.MenuItemID)
				}
				return err
			}
			if !menuItem.Available {
				return fmt.Errorf("menu item %q is not available", menuItem.Name)
			}
			order.Items = append(order.Items, model.OrderItem{
				MenuItemID: menuItem.ID,
				Quantity:   item.Quantity,
				Price:      menuItem.Price,
			})
			order.Total += menuItem.Price * float64(item.Quantity)
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot create order", err)
	}

	PublishOrderEvent(model.OrderEvent{
		OrderID:     order.ID,
		PublicCode:  order.PublicCode,
		TableNumber: order.TableNumber,
		Status:      order.Status,
		Total:       order.Total,
		At:          time.Now(),
	})

	return utils.SuccessResponseWithMessage(c, fiber.StatusCreated, "Order created", order)
}

// UpdateOrderStatus applies a whitelisted status transition. Marking an order
// PAID is the manual staff action; the payment workflow never does it.
func UpdateOrderStatus(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)
	input, ok := c.Locals("inputOrderStatus").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	db := database.DB

	var order model.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !canTransition(order.Status, input.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot change order status from %s to %s", order.Status, input.Status), nil)
	}

	updates := map[string]any{"status": input.Status}
	now := time.Now()
	switch input.Status {
	case model.OrderStatusPaid:
		updates["paid_at"] = now
	case model.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	PublishOrderEvent(model.OrderEvent{
		OrderID:     order.ID,
		PublicCode:  order.PublicCode,
		TableNumber: order.TableNumber,
		Status:      input.Status,
		Total:       order.Total,
		At:          now,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetOrderPaymentQR renders a UPI payment QR code for the order total.
func GetOrderPaymentQR(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)

	var order model.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	vpa := config.Config("UPI_VPA")
	if vpa == "" {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "UPI payments are not configured", nil)
	}
	payee := config.ConfigOr("UPI_PAYEE_NAME", "Restaurant")

	uri := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR&tn=%s",
		url.QueryEscape(vpa), url.QueryEscape(payee), order.Total, url.QueryEscape(order.PublicCode))

	qrBytes, err := utils.GenerateQRCode(uri, 400)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate QR code", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(qrBytes)
}
