package api

import (
	"context"
	"fmt"
	"net/url"
)

// Courier is a delivery courier account.
type Courier struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email,omitempty"`
	VehicleType string  `json:"vehicleType,omitempty"`
	Status      string  `json:"status"` // OFFLINE, AVAILABLE, ON_DELIVERY
	Rating      float64 `json:"rating,omitempty"`
	Active      bool    `json:"active"`
}

// CourierWallet is a courier's earnings balance.
type CourierWallet struct {
	CourierID int64   `json:"courierId"`
	Balance   float64 `json:"balance"`
	Currency  string  `json:"currency"`
}

// CourierStatus is the live status payload for a courier.
type CourierStatus struct {
	CourierID int64   `json:"courierId"`
	Status    string  `json:"status"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// CouriersService manages couriers, their wallets, and live status.
type CouriersService struct {
	c *Client
}

// List pages through couriers (page is zero-based).
func (s *CouriersService) List(ctx context.Context, page, size int) ([]Courier, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("size", fmt.Sprintf("%d", size))

	var couriers []Courier
	if err := s.c.get(ctx, "/couriers", query, &couriers); err != nil {
		return nil, err
	}
	return couriers, nil
}

func (s *CouriersService) Get(ctx context.Context, id int64) (*Courier, error) {
	var courier Courier
	if err := s.c.get(ctx, fmt.Sprintf("/couriers/%d", id), nil, &courier); err != nil {
		return nil, err
	}
	return &courier, nil
}

func (s *CouriersService) Create(ctx context.Context, courier Courier) (*Courier, error) {
	var created Courier
	if err := s.c.post(ctx, "/couriers", nil, courier, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CouriersService) Update(ctx context.Context, id int64, courier Courier) (*Courier, error) {
	var updated Courier
	if err := s.c.put(ctx, fmt.Sprintf("/couriers/%d", id), courier, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CouriersService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/couriers/%d", id))
}

func (s *CouriersService) Wallet(ctx context.Context, id int64) (*CourierWallet, error) {
	var wallet CourierWallet
	if err := s.c.get(ctx, fmt.Sprintf("/couriers/%d/wallet", id), nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *CouriersService) Status(ctx context.Context, id int64) (*CourierStatus, error) {
	var status CourierStatus
	if err := s.c.get(ctx, fmt.Sprintf("/couriers/%d/status", id), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *CouriersService) UpdateStatus(ctx context.Context, id int64, status CourierStatus) (*CourierStatus, error) {
	var updated CourierStatus
	if err := s.c.post(ctx, fmt.Sprintf("/couriers/%d/status", id), nil, status, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
