package handler

import (
	"errors"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetStaff(c *fiber.Ctx) error {
	filterInput := new(model.FilterStaff)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Staff{})
	if filterInput.SearchKey != "" {
		condition = condition.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filterInput.SearchKey)+"%")
	}
	if filterInput.Role != "" {
		condition = condition.Where("role = ?", filterInput.Role)
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", *filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var staff []model.Staff
	if err := condition.Order("name ASC").Find(&staff).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch staff", err)
	}

	response := &model.ResponseCustom{
		Rows:       staff,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetStaffById(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)

	var member model.Staff
	if err := database.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Staff member not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, member)
}

func GetStaffStats(c *fiber.Ctx) error {
	db := database.DB
	stats := model.StaffStats{ByRole: map[string]int64{}}

	db.Model(&model.Staff{}).Count(&stats.Total)
	db.Model(&model.Staff{}).Where("is_active = ?", true).Count(&stats.Active)

	var roleRows []struct {
		Role  string
		Count int64
	}
	if err := db.Model(&model.Staff{}).
		Select("role, COUNT(id) AS count").
		Group("role").
		Scan(&roleRows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch staff statistics", err)
	}
	for _, row := range roleRows {
		stats.ByRole[row.Role] = row.Count
	}

	db.Model(&model.Staff{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(salary), 0)").
		Scan(&stats.SalaryTotal)

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

func CreateStaff(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateStaff").(model.CreateStaffInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	member := new(model.Staff)
	copier.Copy(member, &input)
	member.IsActive = true
	now := time.Now()
	member.JoinedAt = &now

	if err := database.DB.Create(member).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return utils.ErrorResponse(c, fiber.StatusConflict, "A staff member with this phone already exists", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponseWithMessage(c, fiber.StatusCreated, "Staff member created", member)
}

func EditStaff(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)
	input, ok := c.Locals("inputEditStaff").(model.EditStaffInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	db := database.DB

	var member model.Staff
	if err := db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Staff member not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	copier.CopyWithOption(&member, &input, copier.Option{IgnoreEmpty: true})

	if err := db.Save(&member).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, member)
}

// ToggleStaffActive flips the active flag instead of deleting the row,
// so payroll history stays intact.
func ToggleStaffActive(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(int)
	db := database.DB

	var member model.Staff
	if err := db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Staff member not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	member.IsActive = !member.IsActive
	if err := db.Save(&member).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, member)
}

func DeleteStaff(c *fiber.Ctx) error {
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	if err := database.DB.Delete(&model.Staff{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Staff deleted", nil)
}
