package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// KitchenOrder is an order as seen by the kitchen dashboard.
type KitchenOrder struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"orderId"`
	RestaurantID int64      `json:"restaurantId"`
	Status       string     `json:"status"` // QUEUED, PREPARING, READY, PICKED_UP
	Priority     int        `json:"priority"`
	ChefName     string     `json:"chefName,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	ReadyAt      *time.Time `json:"readyAt,omitempty"`
}

// KitchenService drives the kitchen order workflow.
type KitchenService struct {
	c *Client
}

func (s *KitchenService) ActiveOrders(ctx context.Context, restaurantID int64) ([]KitchenOrder, error) {
	query := url.Values{"restaurantId": {strconv.FormatInt(restaurantID, 10)}}
	var orders []KitchenOrder
	if err := s.c.get(ctx, "/kitchen/orders/active", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *KitchenService) ReadyOrders(ctx context.Context, restaurantID int64) ([]KitchenOrder, error) {
	query := url.Values{"restaurantId": {strconv.FormatInt(restaurantID, 10)}}
	var orders []KitchenOrder
	if err := s.c.get(ctx, "/kitchen/orders/ready", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *KitchenService) StartPreparation(ctx context.Context, id int64, chefName string) error {
	query := url.Values{"chefName": {chefName}}
	return s.c.post(ctx, fmt.Sprintf("/kitchen/orders/%d/start", id), query, nil, nil)
}

func (s *KitchenService) MarkReady(ctx context.Context, id int64) error {
	return s.c.post(ctx, fmt.Sprintf("/kitchen/orders/%d/ready", id), nil, nil, nil)
}

func (s *KitchenService) MarkPickedUp(ctx context.Context, id int64) error {
	return s.c.post(ctx, fmt.Sprintf("/kitchen/orders/%d/picked-up", id), nil, nil, nil)
}

func (s *KitchenService) UpdatePriority(ctx context.Context, id int64, priority int) error {
	query := url.Values{"priority": {strconv.Itoa(priority)}}
	return s.c.patch(ctx, fmt.Sprintf("/kitchen/orders/%d/priority", id), query, nil, nil)
}
