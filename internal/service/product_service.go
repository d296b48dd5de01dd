package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"product-service/internal/entity"
)

// ProductStore persists products and translates their status.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetAll(ctx context.Context) ([]*entity.Product, error)
	Create(ctx context.Context, input *entity.ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id string, input *entity.ProductInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// DiscountFetcher resolves the discount rule for a discount type.
type DiscountFetcher interface {
	FetchDiscountInfo(ctx context.Context, discountType string) (*entity.DiscountRule, error)
}

// EventPublisher receives product mutation events.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event *entity.ProductEvent) error
}

// ProductService is a service that provides product-related operations
type ProductService struct {
	store     ProductStore
	discounts DiscountFetcher
	events    EventPublisher
}

// NewProductService creates a new instance of ProductService. events may be nil.
func NewProductService(store ProductStore, discounts DiscountFetcher, events EventPublisher) *ProductService {
	return &ProductService{
		store:     store,
		discounts: discounts,
		events:    events,
	}
}

// GetProductByID returns the product with its discount applied, or nil when
// no product has the given id.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msgf("Error getting product by ID %s", id)
		return nil, &Error{Kind: KindLookup, Err: err}
	}

	if product == nil {
		return nil, nil
	}

	rule, err := s.discounts.FetchDiscountInfo(ctx, product.DiscountType)
	if err != nil {
		log.Error().Err(err).Msgf("Error getting discount for product %s", id)
		return nil, &Error{Kind: KindLookup, Err: err}
	}

	applyDiscount(product, rule)

	return product, nil
}

func applyDiscount(product *entity.Product, rule *entity.DiscountRule) {
	discount := 0.0
	finalPrice := product.Price
	if rule.Enablement {
		discount = rule.Discount
		finalPrice = product.Price * (1 - discount)
	}

	product.Discount = &discount
	product.FinalPrice = &finalPrice
}

// GetAllProducts returns every product without discount information.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.store.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error getting products")
		return nil, &Error{Kind: KindList, Err: err}
	}

	return products, nil
}

// CreateProduct stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, input *entity.ProductInput) (*entity.Product, error) {
	product, err := s.store.Create(ctx, input)
	if err != nil {
		log.Error().Err(err).Msg("Error creating product")
		return nil, &Error{Kind: KindCreate, Err: err}
	}

	s.publish(ctx, "created", product.ID, product)

	return product, nil
}

// UpdateProduct overwrites the product with the given id and returns the
// stored result, or nil when no product has that id.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *entity.ProductInput) (*entity.Product, error) {
	n, err := s.store.Update(ctx, id, input)
	if err != nil {
		log.Error().Err(err).Msgf("Error updating product %s", id)
		return nil, &Error{Kind: KindUpdate, Err: err}
	}

	if n == 0 {
		log.Warn().Msgf("Product %s not found for update", id)
		return nil, nil
	}

	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msgf("Error reading updated product %s", id)
		return nil, &Error{Kind: KindUpdate, Err: err}
	}

	if product != nil {
		s.publish(ctx, "updated", id, product)
	}

	return product, nil
}

// DeleteProduct removes the product with the given id and reports how many
// records were removed.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (int64, error) {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msgf("Error deleting product %s", id)
		return 0, &Error{Kind: KindDelete, Err: err}
	}

	if n > 0 {
		s.publish(ctx, "deleted", id, nil)
	}

	return n, nil
}

func (s *ProductService) publish(ctx context.Context, event, id string, product *entity.Product) {
	if s.events == nil {
		return
	}

	err := s.events.PublishProductEvent(ctx, &entity.ProductEvent{
		Event:     event,
		ProductID: id,
		Product:   product,
	})
	if err != nil {
		log.Error().Err(err).Msgf("Error publishing %s event for product %s", event, id)
	}
}
