package services

import (
	"context"
	"fmt"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/utils/format"
	"github.com/shopspring/decimal"
)

// DashboardStats is the admin dashboard aggregate. Every figure is
// computed from persisted data on each request; nothing is sampled or
// hard-coded.
type DashboardStats struct {
	TotalUsers         int64                               `json:"total_users"`
	TotalProducts      int64                               `json:"total_products"`
	TotalOrders        int64                               `json:"total_orders"`
	Revenue            decimal.Decimal                     `json:"revenue"`
	RevenueFormatted   string                              `json:"revenue_formatted"`
	OrdersByStatus     map[string]int64                    `json:"orders_by_status"`
	ProductsByCategory []repositories.CategoryProductCount `json:"products_by_category"`
	RecentOrders       []models.Order                      `json:"recent_orders"`
}

type ReportService struct {
	store repositories.Store
}

func NewReportService(store repositories.Store) *ReportService {
	return &ReportService{store: store}
}

func (s *ReportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	users, err := s.store.Users().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	products, err := s.store.Products().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	orders, err := s.store.Orders().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	revenue, err := s.store.Orders().SumPaidRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	byStatus, err := s.store.Orders().CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by status: %w", err)
	}
	byCategory, err := s.store.Products().CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group products by category: %w", err)
	}
	recent, err := s.store.Orders().Recent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	return &DashboardStats{
		TotalUsers:         users,
		TotalProducts:      products,
		TotalOrders:        orders,
		Revenue:            revenue,
		RevenueFormatted:   format.Money(revenue),
		OrdersByStatus:     byStatus,
		ProductsByCategory: byCategory,
		RecentOrders:       recent,
	}, nil
}
