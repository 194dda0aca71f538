package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Order statuses as reported by the backend.
const (
	OrderStatusNew             = "NEW"
	OrderStatusAccepted        = "ACCEPTED"
	OrderStatusPreparing       = "PREPARING"
	OrderStatusReady           = "READY"
	OrderStatusCourierAssigned = "COURIER_ASSIGNED"
	OrderStatusOnDelivery      = "ON_DELIVERY"
	OrderStatusDelivered       = "DELIVERED"
	OrderStatusCancelled       = "CANCELLED"
)

// Order is a customer order as seen by the admin surface.
type Order struct {
	ID            int64      `json:"id"`
	OrderNumber   string     `json:"orderNumber"`
	RestaurantID  int64      `json:"restaurantId"`
	CustomerID    int64      `json:"customerId"`
	Status        string     `json:"status"`
	OrderType     string     `json:"orderType"` // DELIVERY, PICKUP, DINE_IN
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	PaymentStatus string     `json:"paymentStatus,omitempty"`
	Subtotal      float64    `json:"subtotal"`
	DeliveryFee   float64    `json:"deliveryFee"`
	Tax           float64    `json:"tax"`
	Discount      float64    `json:"discount,omitempty"`
	Total         float64    `json:"total"`
	CustomerNotes string     `json:"customerNotes,omitempty"`
	PlacedAt      time.Time  `json:"placedAt"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
}

// OrdersService manages customer orders.
type OrdersService struct {
	c *Client
}

func (s *OrdersService) Create(ctx context.Context, order Order) (*Order, error) {
	var created Order
	if err := s.c.post(ctx, "/orders", nil, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *OrdersService) Get(ctx context.Context, id int64) (*Order, error) {
	var order Order
	if err := s.c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByNumber fetches an order by its human-facing order number.
func (s *OrdersService) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var order Order
	if err := s.c.get(ctx, "/orders/number/"+url.PathEscape(orderNumber), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrdersService) List(ctx context.Context, query url.Values) ([]Order, error) {
	var orders []Order
	if err := s.c.get(ctx, "/orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrdersService) Pending(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.c.get(ctx, "/orders/pending", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrdersService) ByRestaurant(ctx context.Context, restaurantID int64) ([]Order, error) {
	var orders []Order
	if err := s.c.get(ctx, fmt.Sprintf("/orders/restaurant/%d", restaurantID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves an order through its lifecycle. changedBy defaults to
// OPERATOR when empty.
func (s *OrdersService) UpdateStatus(ctx context.Context, id int64, status, notes, changedBy string) (*Order, error) {
	if changedBy == "" {
		changedBy = "OPERATOR"
	}
	query := url.Values{}
	query.Set("status", status)
	if notes != "" {
		query.Set("notes", notes)
	}
	query.Set("changedBy", changedBy)

	var updated Order
	if err := s.c.patch(ctx, fmt.Sprintf("/orders/%d/status", id), query, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
