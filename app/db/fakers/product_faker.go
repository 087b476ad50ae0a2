package fakers

import (
	"math/rand"
	"time"

	"github.com/davrk/go-storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var categoryNames = []string{
	"Electronics",
	"Clothing",
	"Home & Garden",
	"Sports",
	"Books",
	"Toys",
}

func CategoryFaker(name string) *models.Category {
	return &models.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func CategoryNames() []string {
	return categoryNames
}

func ProductFaker(category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()
	price := fakePrice()

	imagePaths := []string{
		"/images/products/placeholder-1.jpg",
		"/images/products/placeholder-2.jpg",
		"/images/products/placeholder-3.jpg",
	}

	numImages := rand.Intn(3) + 1
	productImages := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		productImages[i] = models.ProductImage{
			ID:        uuid.New().String(),
			ProductID: productID,
			Path:      imagePaths[rand.Intn(len(imagePaths))],
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	product := &models.Product{
		ID:          productID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Sku:         slug.Make(name),
		Description: faker.Paragraph(),
		Brand:       faker.LastName(),
		Price:       price,
		Stock:       rand.Intn(50) + 1,
		Image:       productImages[0].Path,
		Images:      productImages,
		CategoryID:  category.ID,
		IsNew:       rand.Intn(4) == 0,
		IsFeatured:  rand.Intn(4) == 0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	// Roughly a quarter of products go on sale; the pre-sale price sits
	// above the current one.
	if rand.Intn(4) == 0 {
		compareAt := price.Mul(decimal.NewFromFloat(1.25)).Round(2)
		product.IsOnSale = true
		product.CompareAtPrice = &compareAt
	}

	return product
}

func fakePrice() decimal.Decimal {
	cents := rand.Intn(49500) + 500
	return decimal.New(int64(cents), -2)
}
