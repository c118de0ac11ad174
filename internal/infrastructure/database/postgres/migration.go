// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/favorite"
	"github.com/your-org/foodorder-backend/internal/domain/menu"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/domain/upload"
	"github.com/your-org/foodorder-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: base tables first
	models := []interface{}{
		&user.User{},
		&menu.Item{},
		&cart.Record{},
		&order.Order{},
		&order.OrderItem{},
		&favorite.Favorite{},
		&upload.UploadedFile{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Menu indexes
		"CREATE INDEX IF NOT EXISTS idx_menu_items_category_active ON menu_items(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_menu_items_popular ON menu_items(is_popular, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_menu_items_created_at ON menu_items(created_at DESC)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_records_updated_at ON cart_records(updated_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_menu_item ON order_items(menu_item_id)",

		// Favorite indexes
		"CREATE INDEX IF NOT EXISTS idx_favorites_user_created ON favorites(user_id, created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedMenuItems(); err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedAdminUser creates the default admin user
func (m *Migration) seedAdminUser() error {
	var count int64
	m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := user.User{
		Email:       "admin@nemquan.example.com",
		Password:    string(hashedPassword),
		DisplayName: "Quản trị viên",
		IsActive:    true,
		IsAdmin:     true,
	}

	if err := m.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("👤 Default admin user created (change the password immediately)")
	return nil
}

// seedMenuItems creates the initial menu
func (m *Migration) seedMenuItems() error {
	var count int64
	m.db.Model(&menu.Item{}).Count(&count)
	if count > 0 {
		return nil
	}

	items := []menu.Item{
		// Món chính
		{Name: "Phở Bò", Description: "Phở bò truyền thống với nước dùng đậm đà, thịt bò tái và bánh phở mềm", BasePrice: 45000, Category: "mon-chinh", Rating: 4.9, IsPopular: true, IsActive: true},
		{Name: "Bún Chả", Description: "Bún chả Hà Nội với thịt nướng, nước mắm chua ngọt và rau sống", BasePrice: 40000, Category: "mon-chinh", Rating: 4.8, IsPopular: true, IsActive: true},
		{Name: "Cơm Tấm", Description: "Cơm tấm Sài Gòn với sườn nướng, bì, chả và nước mắm đặc trưng", BasePrice: 35000, Category: "mon-chinh", Rating: 4.7, IsPopular: true, IsActive: true},
		{Name: "Bánh Mì", Description: "Bánh mì Việt Nam với pate, thịt nguội, rau và gia vị", BasePrice: 25000, Category: "mon-chinh", Rating: 4.8, IsPopular: true, IsActive: true},
		{Name: "Bún Bò Huế", Description: "Bún bò Huế với nước dùng đậm đà, thịt bò, giò heo và chả", BasePrice: 45000, Category: "mon-chinh", Rating: 4.8, IsPopular: true, IsActive: true},
		{Name: "Mì Quảng", Description: "Mì Quảng với nước dùng đậm đà, thịt gà, tôm và rau sống", BasePrice: 40000, Category: "mon-chinh", Rating: 4.7, IsPopular: true, IsActive: true},
		{Name: "Bún Riêu", Description: "Bún riêu cua với nước dùng chua ngọt, cua đồng và đậu hũ", BasePrice: 35000, Category: "mon-chinh", Rating: 4.6, IsActive: true},
		{Name: "Cơm Gà", Description: "Cơm gà Hội An với gà xé phay, rau sống và nước mắm", BasePrice: 40000, Category: "mon-chinh", Rating: 4.8, IsPopular: true, IsActive: true},
		{Name: "Cơm Chiên Dương Châu", Description: "Cơm chiên Dương Châu với tôm, thịt, trứng và rau củ", BasePrice: 45000, Category: "mon-chinh", Rating: 4.7, IsActive: true},

		// Khai vị
		{Name: "Gỏi Cuốn", Description: "Gỏi cuốn tôm thịt với bánh tráng, rau sống và nước chấm", BasePrice: 30000, Category: "khai-vi", Rating: 4.7, IsPopular: true, IsActive: true},
		{Name: "Nem Rán", Description: "Nem rán giòn với nhân thịt heo, mộc nhĩ và miến", BasePrice: 35000, Category: "khai-vi", Rating: 4.8, IsPopular: true, IsActive: true},
		{Name: "Chả Giò", Description: "Chả giò Sài Gòn với nhân tôm thịt và rau củ", BasePrice: 40000, Category: "khai-vi", Rating: 4.7, IsActive: true},
		{Name: "Gỏi Gà", Description: "Gỏi gà với thịt gà xé phay, rau răm và nước mắm", BasePrice: 45000, Category: "khai-vi", Rating: 4.6, IsActive: true},

		// Món chay
		{Name: "Phở Chay", Description: "Phở chay với nước dùng rau củ và các loại nấm", BasePrice: 40000, Category: "mon-chay", Rating: 4.6, IsActive: true},
		{Name: "Bún Chay", Description: "Bún chay với đậu hũ, nấm và rau củ", BasePrice: 35000, Category: "mon-chay", Rating: 4.5, IsActive: true},
		{Name: "Mì Xào Chay", Description: "Mì xào chay với đậu hũ, nấm và rau củ", BasePrice: 45000, Category: "mon-chay", Rating: 4.7, IsActive: true},

		// Đồ uống
		{Name: "Trà Đào", Description: "Trà đào thơm ngon, mát lạnh", BasePrice: 25000, Category: "do-uong", Rating: 4.7, IsPopular: true, IsActive: true},
		{Name: "Cà Phê Sữa Đá", Description: "Cà phê sữa đá truyền thống Việt Nam", BasePrice: 20000, Category: "do-uong", Rating: 4.8, IsPopular: true, IsActive: true},
		{Name: "Sinh Tố Bơ", Description: "Sinh tố bơ thơm ngon, béo ngậy", BasePrice: 30000, Category: "do-uong", Rating: 4.8, IsPopular: true, IsActive: true},
		{Name: "Trà Sữa", Description: "Trà sữa thơm ngon với trân châu", BasePrice: 35000, Category: "do-uong", Rating: 4.7, IsPopular: true, IsActive: true},
		{Name: "Nước Dừa", Description: "Nước dừa tươi mát lạnh", BasePrice: 20000, Category: "do-uong", Rating: 4.6, IsActive: true},
	}

	if err := m.db.Create(&items).Error; err != nil {
		return err
	}

	log.Printf("🍜 Seeded %d menu items", len(items))
	return nil
}
