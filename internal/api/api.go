package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"product-service/internal/entity"
)

// ProductService is the product use case the handlers depend on.
type ProductService interface {
	GetProductByID(ctx context.Context, id string) (*entity.Product, error)
	GetAllProducts(ctx context.Context) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, input *entity.ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, input *entity.ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) (int64, error)
}

type productRequest struct {
	Name         string       `json:"productName" validate:"required"`
	Description  string       `json:"productDescription" validate:"required"`
	Status       string       `json:"status" validate:"oneof=active inactive"`
	Stock        *int         `json:"stock" validate:"required,gte=0"`
	Price        *float64     `json:"price" validate:"required,gte=0"`
	DiscountType discountType `json:"discount_type" validate:"oneof=1 2 3"`
}

// discountType accepts the discount type as a JSON string or number.
type discountType string

func (d *discountType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = discountType(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = discountType(n.String())
	return nil
}

func (r *productRequest) toInput() *entity.ProductInput {
	return &entity.ProductInput{
		Name:         r.Name,
		Description:  r.Description,
		Status:       r.Status,
		Stock:        *r.Stock,
		Price:        *r.Price,
		DiscountType: string(r.DiscountType),
	}
}

type ProductHandler struct {
	productService ProductService
	validator      *RequestValidator
}

// NewProductHandler creates a new instance of ProductHandler
func NewProductHandler(productService ProductService, validator *RequestValidator) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator}
}

// RegisterRoutes mounts the product and health routes on e.
func RegisterRoutes(e *echo.Echo, h *ProductHandler) {
	e.POST("/products", h.CreateProduct)
	e.GET("/products", h.GetAllProducts)
	e.GET("/products/:id", h.GetProductByID)
	e.PUT("/products/:id", h.UpdateProduct)
	e.DELETE("/products/:id", h.DeleteProduct)

	e.GET("/health", h.HealthCheck)
}

// bindProduct decodes and validates the request body.
func (h *ProductHandler) bindProduct(c echo.Context) (*productRequest, []FieldError) {
	req := &productRequest{}
	if err := c.Bind(req); err != nil {
		return nil, fieldErrors(err)
	}
	if err := h.validator.Validate(req); err != nil {
		return nil, fieldErrors(err)
	}
	return req, nil
}

// CreateProduct creates a new product --> POST /products
//
//	@Summary	Create a new product
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		productRequest	true	"Product to create"
//	@Success	201		{object}	entity.Product
//	@Failure	400		{object}	map[string][]FieldError
//	@Failure	500		{object}	map[string]string
//	@Router		/products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	req, errs := h.bindProduct(c)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string][]FieldError{"errors": errs})
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		log.Error().Err(err).Msg("Error creating product")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An error occurred while creating the product."})
	}

	return c.JSON(http.StatusCreated, product)
}

// GetAllProducts lists every product --> GET /products
//
//	@Summary	Get all products
//	@Tags		Products
//	@Produce	json
//	@Success	200	{array}		entity.Product
//	@Failure	500	{object}	map[string]string
//	@Router		/products [get]
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	products, err := h.productService.GetAllProducts(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Error getting products")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An error occurred while getting products."})
	}

	if products == nil {
		products = []*entity.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

// GetProductByID gets a product with its discounted price --> GET /products/:id
//
//	@Summary	Get a product by ID
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"ID of the product to retrieve"
//	@Success	200	{object}	entity.Product
//	@Failure	404	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id := c.Param("id")

	product, err := h.productService.GetProductByID(c.Request().Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Error getting product by ID")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An error occurred while getting the product."})
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found."})
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct overwrites a product --> PUT /products/:id
// An unknown id answers 200 with a null body.
//
//	@Summary	Update a product by ID
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"ID of the product to update"
//	@Param		product	body		productRequest	true	"New product fields"
//	@Success	200		{object}	entity.Product
//	@Failure	400		{object}	map[string][]FieldError
//	@Failure	500		{object}	map[string]string
//	@Router		/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")
	if errs := h.validator.ValidateParam("id", id, "alphanum"); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string][]FieldError{"errors": errs})
	}

	req, errs := h.bindProduct(c)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string][]FieldError{"errors": errs})
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		log.Error().Err(err).Msg("Error updating product")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An error occurred while updating the product."})
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product --> DELETE /products/:id
//
//	@Summary	Delete a product by ID
//	@Tags		Products
//	@Param		id	path	string	true	"ID of the product to delete"
//	@Success	204
//	@Failure	500	{object}	map[string]string
//	@Router		/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	if _, err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		log.Error().Err(err).Msg("Error deleting product")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An error occurred while deleting the product."})
	}

	return c.NoContent(http.StatusNoContent)
}

// HealthCheck --> GET /health
//
//	@Summary	Service health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *ProductHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}
