package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Customer is a platform consumer account.
type Customer struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone,omitempty"`
	Active     bool      `json:"active"`
	OrderCount int       `json:"orderCount,omitempty"`
	TotalSpent float64   `json:"totalSpent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CustomerActivity is one entry of a customer's activity feed.
type CustomerActivity struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customerId"`
	ActivityType string    `json:"activityType"`
	Description  string    `json:"description,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// CustomersService manages consumer accounts and their activity feeds.
type CustomersService struct {
	c *Client
}

func (s *CustomersService) List(ctx context.Context, query url.Values) ([]Customer, error) {
	var customers []Customer
	if err := s.c.get(ctx, "/customers", query, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CustomersService) Get(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	if err := s.c.get(ctx, fmt.Sprintf("/customers/%d", id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomersService) Create(ctx context.Context, customer Customer) (*Customer, error) {
	var created Customer
	if err := s.c.post(ctx, "/customers", nil, customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CustomersService) Update(ctx context.Context, id int64, customer Customer) (*Customer, error) {
	var updated Customer
	if err := s.c.put(ctx, fmt.Sprintf("/customers/%d", id), customer, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CustomersService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/customers/%d", id))
}

// Orders lists a customer's order history.
func (s *CustomersService) Orders(ctx context.Context, id int64) ([]Order, error) {
	var orders []Order
	if err := s.c.get(ctx, fmt.Sprintf("/customers/%d/orders", id), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Activity lists the platform-wide customer activity feed.
func (s *CustomersService) Activity(ctx context.Context) ([]CustomerActivity, error) {
	var activity []CustomerActivity
	if err := s.c.get(ctx, "/customers/activity", nil, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// FilterActivity lists activity entries matching the given filter.
func (s *CustomersService) FilterActivity(ctx context.Context, query url.Values) ([]CustomerActivity, error) {
	var activity []CustomerActivity
	if err := s.c.get(ctx, "/customers/activity/filter", query, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}
