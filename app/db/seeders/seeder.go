package seeders

import (
	"log"

	"github.com/davrk/go-storefront/app/db/fakers"
	"github.com/davrk/go-storefront/app/models"
	"gorm.io/gorm"
)

const productsPerCategory = 8

// DBSeed populates a development database: one fixed admin login, a few
// fake customers, and a catalog of categories with fake products. Existing
// rows (matched by unique columns) are left alone, so reseeding is safe.
func DBSeed(db *gorm.DB) error {
	admin := fakers.AdminFaker()
	if err := db.FirstOrCreate(admin, "email = ?", admin.Email).Error; err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		user := fakers.UserFaker()
		if err := db.FirstOrCreate(user, "email = ?", user.Email).Error; err != nil {
			return err
		}
	}

	for _, name := range fakers.CategoryNames() {
		category := fakers.CategoryFaker(name)
		if err := db.FirstOrCreate(category, "slug = ?", category.Slug).Error; err != nil {
			return err
		}

		var count int64
		if err := db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for i := 0; i < productsPerCategory; i++ {
			if err := db.Create(fakers.ProductFaker(category)).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Seeding complete")
	return nil
}
