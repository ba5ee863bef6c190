package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/ports"
)

type ProductHandler struct {
	service ports.LedgerService
}

func NewProductHandler(service ports.LedgerService) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Type  string  `json:"type"`
	Stock *int    `json:"stock"`
}

type updateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Type  *string  `json:"type"`
}

type stockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// List returns the whole catalog.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create adds a product. Stock is optional; products without it are
// untracked.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(c.Request().Context(), actor, ports.ProductInput{
		Name:  req.Name,
		Price: req.Price,
		Type:  req.Type,
		Stock: req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Update shallow-merges the provided fields into a product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to merge"
// @Success      200   {object}  domain.Product
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), actor, id, ports.ProductUpdate{
		Name:  req.Name,
		Price: req.Price,
		Type:  req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product from the catalog.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Product id"
// @Success      200  {object}  statusResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Product deleted successfully"})
}

// SetStock overwrites a product's stock level.
//
// @Summary      Set product stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Product id"
// @Param        body  body      stockRequest  true  "New stock level"
// @Success      200   {object}  ports.StockResult
// @Router       /api/products/{id}/stock [put]
func (h *ProductHandler) SetStock(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.AdjustStock(c.Request().Context(), actor, id, req.Stock)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// LowStock returns tracked products at or below the restock threshold.
//
// @Summary      Low stock products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c echo.Context) error {
	products, err := h.service.LowStockProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
