package api

import (
	"context"
	"fmt"
	"net/url"
)

// Restaurant is a delivery restaurant on the platform.
type Restaurant struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description,omitempty"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	Country            string  `json:"country,omitempty"`
	Latitude           float64 `json:"latitude,omitempty"`
	Longitude          float64 `json:"longitude,omitempty"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email,omitempty"`
	Rating             float64 `json:"rating"`
	Active             bool    `json:"active"`
	AcceptingOrders    bool    `json:"acceptingOrders"`
	MinimumOrderAmount float64 `json:"minimumOrderAmount,omitempty"`
	DeliveryFee        float64 `json:"deliveryFee,omitempty"`
}

// RestaurantsService manages restaurants.
type RestaurantsService struct {
	c *Client
}

func (s *RestaurantsService) List(ctx context.Context, query url.Values) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := s.c.get(ctx, "/restaurants", query, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *RestaurantsService) Get(ctx context.Context, id int64) (*Restaurant, error) {
	var restaurant Restaurant
	if err := s.c.get(ctx, fmt.Sprintf("/restaurants/%d", id), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *RestaurantsService) Create(ctx context.Context, restaurant Restaurant) (*Restaurant, error) {
	var created Restaurant
	if err := s.c.post(ctx, "/restaurants", nil, restaurant, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *RestaurantsService) Update(ctx context.Context, id int64, restaurant Restaurant) (*Restaurant, error) {
	var updated Restaurant
	if err := s.c.put(ctx, fmt.Sprintf("/restaurants/%d", id), restaurant, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RestaurantsService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/restaurants/%d", id))
}

// Active lists restaurants currently marked active.
func (s *RestaurantsService) Active(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := s.c.get(ctx, "/restaurants/active", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// AcceptingOrders lists restaurants currently taking new orders.
func (s *RestaurantsService) AcceptingOrders(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := s.c.get(ctx, "/restaurants/accepting-orders", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}
