package api

import (
	"context"
	"fmt"
	"net/url"
)

// Operator is a back-office operator account as reported by the backend.
type Operator struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone,omitempty"`
	Role          string `json:"role"`
	Active        bool   `json:"active"`
	EmailVerified bool   `json:"emailVerified"`
}

// OperatorInput carries the writable operator fields for create and update.
// Omitted fields are left unchanged on update; Active uses a pointer so
// "not supplied" and "deactivate" stay distinguishable.
type OperatorInput struct {
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	Active    *bool  `json:"active,omitempty"`
}

// OperatorsService manages back-office operator accounts.
type OperatorsService struct {
	c *Client
}

func (s *OperatorsService) List(ctx context.Context, query url.Values) ([]Operator, error) {
	var operators []Operator
	if err := s.c.get(ctx, "/operators", query, &operators); err != nil {
		return nil, err
	}
	return operators, nil
}

func (s *OperatorsService) Get(ctx context.Context, id int64) (*Operator, error) {
	var operator Operator
	if err := s.c.get(ctx, fmt.Sprintf("/operators/%d", id), nil, &operator); err != nil {
		return nil, err
	}
	return &operator, nil
}

func (s *OperatorsService) Create(ctx context.Context, input OperatorInput) (*Operator, error) {
	var created Operator
	if err := s.c.post(ctx, "/operators", nil, input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *OperatorsService) Update(ctx context.Context, id int64, input OperatorInput) (*Operator, error) {
	var updated Operator
	if err := s.c.put(ctx, fmt.Sprintf("/operators/%d", id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *OperatorsService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/operators/%d", id))
}
