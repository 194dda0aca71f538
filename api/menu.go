package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MenuCategory is a menu category belonging to a restaurant. Products is
// populated only by the public menu endpoint.
type MenuCategory struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	SortOrder    int       `json:"sortOrder"`
	Active       bool      `json:"active"`
	Products     []Product `json:"products,omitempty"`
}

// Product statuses as reported by the backend.
const (
	ProductStatusDraft     = "DRAFT"
	ProductStatusPublished = "PUBLISHED"
	ProductStatusArchived  = "ARCHIVED"
)

// Product is a sellable menu item.
type Product struct {
	ID               int64   `json:"id"`
	CategoryID       int64   `json:"categoryId"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	ImageURL         string  `json:"imageUrl,omitempty"`
	Price            float64 `json:"price"`
	PriceWithMargin  float64 `json:"priceWithMargin,omitempty"`
	CostPrice        float64 `json:"costPrice,omitempty"`
	MarginPercentage float64 `json:"marginPercentage,omitempty"`
	ItemType         string  `json:"itemType,omitempty"`
	SortOrder        int     `json:"sortOrder"`
	Status           string  `json:"status"`
	InStock          bool    `json:"inStock"`
	Featured         bool    `json:"featured"`
	HasVariants      bool    `json:"hasVariants"`
}

// MenuCollection is a curated, optionally time-bounded set of products
// (e.g., a seasonal or lunch menu).
type MenuCollection struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Active       bool   `json:"isActive"`
	StartDate    string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate      string `json:"endDate,omitempty"`
	SortOrder    int    `json:"sortOrder"`
}

// LinkedItem is a cross-sell link between two products.
type LinkedItem struct {
	ID                int64  `json:"id"`
	ProductID         int64  `json:"productId"`
	LinkedProductID   int64  `json:"linkedProductId"`
	LinkedProductName string `json:"linkedProductName,omitempty"`
	LinkType          string `json:"linkType"`
	SortOrder         int    `json:"sortOrder"`
}

// MenuService manages categories, products, menu collections, and product
// link-ups.
type MenuService struct {
	c *Client
}

// PublicMenu fetches a restaurant's published menu: its categories with
// products nested.
func (s *MenuService) PublicMenu(ctx context.Context, restaurantID int64) ([]MenuCategory, error) {
	var menu []MenuCategory
	if err := s.c.get(ctx, fmt.Sprintf("/menu/public/%d", restaurantID), nil, &menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *MenuService) Categories(ctx context.Context, restaurantID int64) ([]MenuCategory, error) {
	var categories []MenuCategory
	if err := s.c.get(ctx, fmt.Sprintf("/menu/restaurants/%d/categories", restaurantID), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MenuService) GetCategory(ctx context.Context, id int64) (*MenuCategory, error) {
	var category MenuCategory
	if err := s.c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, category MenuCategory) (*MenuCategory, error) {
	var created MenuCategory
	if err := s.c.post(ctx, "/categories", nil, category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, id int64, category MenuCategory) (*MenuCategory, error) {
	var updated MenuCategory
	if err := s.c.put(ctx, fmt.Sprintf("/categories/%d", id), category, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/categories/%d", id))
}

func (s *MenuService) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := s.c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MenuService) CreateProduct(ctx context.Context, product Product) (*Product, error) {
	var created Product
	if err := s.c.post(ctx, "/products", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *MenuService) UpdateProduct(ctx context.Context, id int64, product Product) (*Product, error) {
	var updated Product
	if err := s.c.put(ctx, fmt.Sprintf("/products/%d", id), product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MenuService) DeleteProduct(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/products/%d", id))
}

func (s *MenuService) ProductsByRestaurant(ctx context.Context, restaurantID int64) ([]Product, error) {
	var products []Product
	if err := s.c.get(ctx, fmt.Sprintf("/products/restaurant/%d", restaurantID), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MenuService) ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	var products []Product
	if err := s.c.get(ctx, fmt.Sprintf("/products/category/%d", categoryID), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MenuService) Collections(ctx context.Context, restaurantID int64, query url.Values) ([]MenuCollection, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("restaurantId", strconv.FormatInt(restaurantID, 10))

	var collections []MenuCollection
	if err := s.c.get(ctx, "/menu-collections", query, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (s *MenuService) GetCollection(ctx context.Context, id int64) (*MenuCollection, error) {
	var collection MenuCollection
	if err := s.c.get(ctx, fmt.Sprintf("/menu-collections/%d", id), nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// ActiveCollections lists the collections currently live for a restaurant.
func (s *MenuService) ActiveCollections(ctx context.Context, restaurantID int64) ([]MenuCollection, error) {
	query := url.Values{"restaurantId": {strconv.FormatInt(restaurantID, 10)}}
	var collections []MenuCollection
	if err := s.c.get(ctx, "/menu-collections/active", query, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (s *MenuService) CreateCollection(ctx context.Context, collection MenuCollection) (*MenuCollection, error) {
	var created MenuCollection
	if err := s.c.post(ctx, "/menu-collections", nil, collection, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *MenuService) UpdateCollection(ctx context.Context, id int64, collection MenuCollection) (*MenuCollection, error) {
	var updated MenuCollection
	if err := s.c.put(ctx, fmt.Sprintf("/menu-collections/%d", id), collection, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddCollectionProducts appends products to a collection. The body is the
// bare list of product IDs.
func (s *MenuService) AddCollectionProducts(ctx context.Context, id int64, productIDs []int64) error {
	return s.c.post(ctx, fmt.Sprintf("/menu-collections/%d/products", id), nil, productIDs, nil)
}

func (s *MenuService) DeleteCollection(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/menu-collections/%d", id))
}

func (s *MenuService) LinkedItems(ctx context.Context, productID int64) ([]LinkedItem, error) {
	var items []LinkedItem
	if err := s.c.get(ctx, fmt.Sprintf("/products/%d/linked-items", productID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuService) LinkedItemsByType(ctx context.Context, productID int64, linkType string) ([]LinkedItem, error) {
	query := url.Values{"linkType": {linkType}}
	var items []LinkedItem
	if err := s.c.get(ctx, fmt.Sprintf("/products/%d/linked-items/by-type", productID), query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuService) AddLinkedItem(ctx context.Context, productID int64, item LinkedItem) (*LinkedItem, error) {
	var created LinkedItem
	if err := s.c.post(ctx, fmt.Sprintf("/products/%d/linked-items", productID), nil, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *MenuService) DeleteLinkedItem(ctx context.Context, productID, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/products/%d/linked-items/%d", productID, id))
}
