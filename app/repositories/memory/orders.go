package memory

import (
	"context"
	"sort"
	"time"

	"github.com/davrk/go-storefront/app/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type orderRepo struct {
	s *Store
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.OrderItems {
		if order.OrderItems[i].ID == "" {
			order.OrderItems[i].ID = uuid.New().String()
		}
		order.OrderItems[i].OrderID = order.ID
		order.OrderItems[i].CreatedAt = now
		order.OrderItems[i].UpdatedAt = now
	}
	r.s.orders[order.ID] = *order
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if o, ok := r.s.orders[id]; ok {
		order := o
		order.OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
		return &order, nil
	}
	return nil, nil
}

func (r *orderRepo) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, o := range r.s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (r *orderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		orders = append(orders, o)
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func sortOrdersNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.s.orders[id] = o
	return nil
}

func (r *orderRepo) UpdatePaymentStatus(ctx context.Context, id, paymentStatus, paymentRef string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil
	}
	o.PaymentStatus = paymentStatus
	o.PaymentRef = paymentRef
	o.UpdatedAt = time.Now()
	r.s.orders[id] = o
	return nil
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.orders)), nil
}

func (r *orderRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, o := range r.s.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *orderRepo) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, o := range r.s.orders {
		if o.PaymentStatus == models.PaymentStatusPaid {
			total = total.Add(o.GrandTotal)
		}
	}
	return total, nil
}

func (r *orderRepo) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	orders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}
