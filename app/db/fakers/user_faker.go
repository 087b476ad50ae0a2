package fakers

import (
	"strings"
	"time"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

func UserFaker() *models.User {
	first := faker.FirstName()
	last := faker.LastName()
	password, _ := helpers.HashPassword("password123")

	return &models.User{
		ID:        uuid.New().String(),
		Username:  strings.ToLower(first + "." + last + uuid.NewString()[:4]),
		Email:     faker.Email(),
		Password:  password,
		FirstName: first,
		LastName:  last,
		Role:      models.RoleCustomer,
		Phone:     faker.Phonenumber(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// AdminFaker builds the fixed admin login used for local development.
func AdminFaker() *models.User {
	password, _ := helpers.HashPassword("admin123")

	return &models.User{
		ID:        uuid.New().String(),
		Username:  "admin",
		Email:     "admin@storefront.local",
		Password:  password,
		FirstName: "Store",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
