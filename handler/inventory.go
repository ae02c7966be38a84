package handler

import (
	"errors"
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetInventoryItems(c *fiber.Ctx) error {
	filterInput := new(model.FilterInventory)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.InventoryItem{})
	if filterInput.SearchKey != "" {
		condition = condition.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filterInput.SearchKey)+"%")
	}
	if filterInput.Category != "" {
		condition = condition.Where("category = ?", filterInput.Category)
	}
	if filterInput.LowStock != nil && *filterInput.LowStock {
		condition = condition.Where("quantity <= reorder_level")
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var items []model.InventoryItem
	if err := condition.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch inventory", err)
	}

	response := &model.ResponseCustom{
		Rows:       items,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetInventoryItemById(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)

	var item model.InventoryItem
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Inventory item not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func GetInventoryStats(c *fiber.Ctx) error {
	db := database.DB
	var stats model.InventoryStats

	db.Model(&model.InventoryItem{}).Count(&stats.TotalItems)
	db.Model(&model.InventoryItem{}).Where("quantity <= reorder_level").Count(&stats.LowStockItems)
	db.Model(&model.InventoryItem{}).
		Select("COALESCE(SUM(quantity * cost_per_unit), 0)").
		Scan(&stats.StockValue)

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// GetLowStockItems lists everything at or below its reorder level.
func GetLowStockItems(c *fiber.Ctx) error {
	items, err := helper.LowStockItems()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch low stock items", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func CreateInventoryItem(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateInventoryItem").(model.CreateInventoryItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	item := new(model.InventoryItem)
	copier.Copy(item, &input)

	if err := database.DB.Create(item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponseWithMessage(c, fiber.StatusCreated, "Inventory item created", item)
}

func EditInventoryItem(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)
	input, ok := c.Locals("inputEditInventoryItem").(model.EditInventoryItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	db := database.DB

	var item model.InventoryItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Inventory item not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	copier.CopyWithOption(&item, &input, copier.Option{IgnoreEmpty: true})
	// IgnoreEmpty skips zero values, so an explicit quantity of 0 must be applied by hand.
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.ReorderLevel != nil {
		item.ReorderLevel = *input.ReorderLevel
	}

	if err := db.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func DeleteInventoryItems(c *fiber.Ctx) error {
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	if err := database.DB.Delete(&model.InventoryItem{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Inventory items deleted", nil)
}
