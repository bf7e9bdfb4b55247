package initializers

import (
	"github.com/fireguard/cms-api/models"
	"github.com/fireguard/cms-api/utils"
	"gorm.io/gorm"
)

func SyncDatabase() {
	if err := Migrate(DB); err != nil {
		Log.Fatalw("Database migration failed", "error", err)
	}
	Log.Info("Database synced successfully.")

	if err := SeedAdmin(Config.AdminUsername, Config.AdminPassword); err != nil {
		Log.Errorw("Failed to seed admin user", "error", err)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Product{},
		&models.SubProduct{},
		&models.Page{},
		&models.Blog{},
		&models.Gallery{},
		&models.Portfolio{},
		&models.Customer{},
		&models.ContactInfo{},
		&models.AboutStats{},
		&models.Inquiry{},
		&models.Analytics{},
	)
}

// SeedAdmin creates the first admin account when the user table is empty.
func SeedAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{Username: username, Password: hashed, Role: models.RoleAdmin}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	Log.Infow("Seeded admin user", "username", username)
	return nil
}
