package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"product-service/internal/cache"
	"product-service/internal/entity"
)

// newProductID returns an alphanumeric identifier so it can travel in a path segment.
func newProductID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// toRecord converts an input into its persisted shape.
func toRecord(id string, input *entity.ProductInput, statuses *cache.StatusCache) (*entity.ProductRecord, error) {
	code, ok := statuses.Code(input.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, input.Status)
	}

	return &entity.ProductRecord{
		ID:           id,
		Name:         input.Name,
		Description:  input.Description,
		StatusCode:   code,
		Stock:        input.Stock,
		Price:        input.Price,
		DiscountType: input.DiscountType,
	}, nil
}

// toProduct converts a persisted record for output. A status code with no
// label leaves Status empty instead of failing the read.
func toProduct(record *entity.ProductRecord, statuses *cache.StatusCache) *entity.Product {
	product := &entity.Product{
		ID:           record.ID,
		Name:         record.Name,
		Description:  record.Description,
		Stock:        record.Stock,
		Price:        record.Price,
		DiscountType: record.DiscountType,
	}

	label, ok := statuses.Label(record.StatusCode)
	if !ok {
		log.Warn().Msgf("Unknown status code %d for product %s", record.StatusCode, record.ID)
		return product
	}
	product.Status = label

	return product
}
