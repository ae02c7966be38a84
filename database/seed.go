package database

import (
	"time"

	"restaurant_manager/config"
	"restaurant_manager/constants"
	"restaurant_manager/logger"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(config.ConfigOr("ADMIN_PASSWORD", "admin123")), 10)
	hashPassword := string(bytes)
	if err != nil {
		logger.Log.Error("failed to hash admin password: " + err.Error())
		return
	}

	admin := model.User{
		Username: "admin",
		Password: hashPassword,
		Name:     "Admin User",
		Role:     constants.ROLE_ADMIN,
	}
	if err := db.Where(model.User{Username: admin.Username}).FirstOrCreate(&admin).Error; err != nil {
		logger.Log.Error("failed to seed admin user: " + err.Error())
	}

	seedMenuItems(db)
	seedStaff(db)
	seedInventory(db)
	seedCustomers(db)
	if config.Config("SEED_SAMPLE_DATA") == "true" {
		seedSampleOrders(db)
	}
	logger.Log.Info("seed data applied")
}

func seedMenuItems(db *gorm.DB) {
	var count int64
	db.Model(&model.MenuItem{}).Count(&count)
	if count > 0 {
		return
	}

	items := []model.MenuItem{
		{Name: "Paneer Tikka", Price: 120, Category: "Appetizer", Description: "Grilled cottage cheese with spices"},
		{Name: "Chicken Tikka", Price: 140, Category: "Appetizer", Description: "Grilled chicken with spices"},
		{Name: "Spring Rolls", Price: 80, Category: "Appetizer", Description: "Crispy vegetable spring rolls"},
		{Name: "Veg Biryani", Price: 180, Category: "Rice", Description: "Aromatic basmati rice with mixed vegetables"},
		{Name: "Chicken Biryani", Price: 220, Category: "Rice", Description: "Aromatic rice with spiced chicken"},
		{Name: "Jeera Rice", Price: 80, Category: "Rice", Description: "Cumin flavored basmati rice"},
		{Name: "Butter Chicken", Price: 220, Category: "Curry", Description: "Creamy tomato chicken curry"},
		{Name: "Dal Makhani", Price: 150, Category: "Curry", Description: "Creamy black lentils with butter"},
		{Name: "Palak Paneer", Price: 130, Category: "Vegetable", Description: "Cottage cheese in spinach gravy"},
		{Name: "Butter Naan", Price: 30, Category: "Bread", Description: "Soft leavened bread with butter"},
		{Name: "Garlic Naan", Price: 40, Category: "Bread", Description: "Leavened bread with garlic and herbs"},
		{Name: "Margherita Pizza", Price: 250, Category: "Pizza", Description: "Classic tomato and mozzarella pizza"},
		{Name: "Cold Coffee", Price: 80, Category: "Beverage", Description: "Iced coffee with milk and sugar"},
		{Name: "Masala Chai", Price: 30, Category: "Beverage", Description: "Spiced tea with milk"},
		{Name: "Mango Lassi", Price: 70, Category: "Beverage", Description: "Sweet yogurt drink with mango"},
		{Name: "Gulab Jamun", Price: 60, Category: "Dessert", Description: "Sweet milk dumplings in syrup"},
		{Name: "Samosa", Price: 25, Category: "Snack", Description: "Fried pastry with spiced potato filling"},
		{Name: "French Fries", Price: 60, Category: "Snack", Description: "Crispy potato fries"},
	}
	for i := range items {
		items[i].Slug = slug.Make(items[i].Name)
		items[i].Available = true
	}
	if err := db.Create(&items).Error; err != nil {
		logger.Log.Error("failed to seed menu items: " + err.Error())
	}
}

func seedStaff(db *gorm.DB) {
	var count int64
	db.Model(&model.Staff{}).Count(&count)
	if count > 0 {
		return
	}

	joined := time.Now().AddDate(-1, 0, 0)
	staff := []model.Staff{
		{Name: "Rajesh Kumar", Role: "chef", Phone: "9876500001", Email: strPtr("rajesh@example.com"), Salary: 35000, IsActive: true, JoinedAt: &joined},
		{Name: "Priya Sharma", Role: "waiter", Phone: "9876500002", Salary: 18000, IsActive: true, JoinedAt: &joined},
		{Name: "Amit Verma", Role: "waiter", Phone: "9876500003", Salary: 18000, IsActive: true, JoinedAt: &joined},
		{Name: "Sunita Devi", Role: "cashier", Phone: "9876500004", Salary: 22000, IsActive: true, JoinedAt: &joined},
		{Name: "Vikram Singh", Role: "manager", Phone: "9876500005", Email: strPtr("vikram@example.com"), Salary: 45000, IsActive: true, JoinedAt: &joined},
	}
	if err := db.Create(&staff).Error; err != nil {
		logger.Log.Error("failed to seed staff: " + err.Error())
	}
}

func seedInventory(db *gorm.DB) {
	var count int64
	db.Model(&model.InventoryItem{}).Count(&count)
	if count > 0 {
		return
	}

	items := []model.InventoryItem{
		{Name: "Basmati Rice", Category: "Grains", Quantity: 50, Unit: "kg", ReorderLevel: 10, CostPerUnit: 90, Supplier: "Gupta Traders"},
		{Name: "Paneer", Category: "Dairy", Quantity: 12, Unit: "kg", ReorderLevel: 5, CostPerUnit: 320, Supplier: "Amul Distributor"},
		{Name: "Chicken", Category: "Meat", Quantity: 20, Unit: "kg", ReorderLevel: 8, CostPerUnit: 220, Supplier: "Fresh Farms"},
		{Name: "Tomatoes", Category: "Vegetables", Quantity: 25, Unit: "kg", ReorderLevel: 10, CostPerUnit: 40, Supplier: "Local Mandi"},
		{Name: "Onions", Category: "Vegetables", Quantity: 30, Unit: "kg", ReorderLevel: 10, CostPerUnit: 35, Supplier: "Local Mandi"},
		{Name: "Cooking Oil", Category: "Essentials", Quantity: 15, Unit: "litre", ReorderLevel: 5, CostPerUnit: 140, Supplier: "Gupta Traders"},
		{Name: "Wheat Flour", Category: "Grains", Quantity: 40, Unit: "kg", ReorderLevel: 15, CostPerUnit: 45, Supplier: "Gupta Traders"},
		{Name: "Milk", Category: "Dairy", Quantity: 20, Unit: "litre", ReorderLevel: 10, CostPerUnit: 60, Supplier: "Amul Distributor"},
	}
	if err := db.Create(&items).Error; err != nil {
		logger.Log.Error("failed to seed inventory: " + err.Error())
	}
}

func seedCustomers(db *gorm.DB) {
	var count int64
	db.Model(&model.Customer{}).Count(&count)
	if count > 0 {
		return
	}

	customers := []model.Customer{
		{Name: "Aman", Phone: "9999990001"},
		{Name: "Riya", Phone: "9999990002", Email: strPtr("riya@example.com")},
	}
	if err := db.Create(&customers).Error; err != nil {
		logger.Log.Error("failed to seed customers: " + err.Error())
	}
}

// seedSampleOrders creates a handful of orders with matching completed
// payments, enough for the dashboard to show something on a fresh install.
func seedSampleOrders(db *gorm.DB) {
	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count > 0 {
		return
	}

	var items []model.MenuItem
	if err := db.Limit(3).Find(&items).Error; err != nil || len(items) < 3 {
		return
	}

	samples := []struct {
		table  int
		status string
		method string
		amount float64
	}{
		{1, model.OrderStatusDelivered, model.PaymentMethodCash, 450},
		{2, model.OrderStatusDelivered, model.PaymentMethodCard, 320},
		{3, model.OrderStatusPending, "", 0},
		{4, model.OrderStatusDelivered, model.PaymentMethodUPI, 280},
	}
	for i, s := range samples {
		order := model.Order{
			PublicCode:  utils.NewPublicCode("ORD"),
			TableNumber: s.table,
			Status:      s.status,
			Total:       s.amount,
			Items: []model.OrderItem{
				{MenuItemID: items[i%len(items)].ID, Quantity: 1, Price: items[i%len(items)].Price},
			},
		}
		if order.Total == 0 {
			order.Total = order.Items[0].Price
		}
		if err := db.Create(&order).Error; err != nil {
			logger.Log.Error("failed to seed sample order: " + err.Error())
			continue
		}
		if s.method != "" {
			method := s.method
			payment := model.Payment{
				OrderId:       order.ID,
				Amount:        s.amount,
				Method:        &method,
				Status:        model.PaymentStatusCompleted,
				TransactionID: utils.NewPublicCode("TXN"),
			}
			if err := db.Create(&payment).Error; err != nil {
				logger.Log.Error("failed to seed sample payment: " + err.Error())
			}
		}
	}
}
