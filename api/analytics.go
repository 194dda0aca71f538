package api

import (
	"context"
	"net/url"
)

// AnalyticsSummary is the dashboard headline figures.
type AnalyticsSummary struct {
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AverageOrder  float64 `json:"averageOrder"`
	NewCustomers  int64   `json:"newCustomers"`
	ActiveCourier int64   `json:"activeCouriers"`
}

// RevenuePoint is one day of revenue.
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// CategorySales is sales volume for one menu category.
type CategorySales struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int64   `json:"quantity"`
}

// HourlySales is order volume for one hour of the day.
type HourlySales struct {
	Hour   int     `json:"hour"`
	Orders int64   `json:"orders"`
	Sales  float64 `json:"sales"`
}

// RetentionPoint is customer retention for one cohort period.
type RetentionPoint struct {
	Period    string  `json:"period"`
	Retained  int64   `json:"retained"`
	Total     int64   `json:"total"`
	Retention float64 `json:"retention"`
}

// AnalyticsService serves the dashboard analytics read models.
type AnalyticsService struct {
	c *Client
}

func (s *AnalyticsService) Summary(ctx context.Context, query url.Values) (*AnalyticsSummary, error) {
	var summary AnalyticsSummary
	if err := s.c.get(ctx, "/analytics/summary", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *AnalyticsService) DailyRevenue(ctx context.Context, query url.Values) ([]RevenuePoint, error) {
	var points []RevenuePoint
	if err := s.c.get(ctx, "/analytics/financial/daily-revenue", query, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *AnalyticsService) SalesByCategory(ctx context.Context, query url.Values) ([]CategorySales, error) {
	var sales []CategorySales
	if err := s.c.get(ctx, "/analytics/financial/sales-by-category", query, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *AnalyticsService) SalesPerHour(ctx context.Context, query url.Values) ([]HourlySales, error) {
	var sales []HourlySales
	if err := s.c.get(ctx, "/analytics/operational/sales-per-hour", query, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *AnalyticsService) PeakHours(ctx context.Context, query url.Values) ([]HourlySales, error) {
	var hours []HourlySales
	if err := s.c.get(ctx, "/analytics/operational/peak-hours", query, &hours); err != nil {
		return nil, err
	}
	return hours, nil
}

func (s *AnalyticsService) CustomerRetention(ctx context.Context, query url.Values) ([]RetentionPoint, error) {
	var retention []RetentionPoint
	if err := s.c.get(ctx, "/analytics/customer/retention", query, &retention); err != nil {
		return nil, err
	}
	return retention, nil
}
