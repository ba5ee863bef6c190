package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/ports"
)

type TransactionHandler struct {
	service ports.LedgerService
}

func NewTransactionHandler(service ports.LedgerService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type saleItemRequest struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Type      string  `json:"type"`
}

type saleRequest struct {
	ClientID int64             `json:"clientId" validate:"required"`
	Items    []saleItemRequest `json:"items" validate:"required,min=1,dive"`
	Paid     float64           `json:"paid" validate:"gte=0"`
}

type loanPaymentRequest struct {
	ClientID int64   `json:"clientId" validate:"required"`
	Amount   float64 `json:"amount" validate:"required"`
}

// RecordSale records a credit sale for a client.
//
// @Summary      Record a sale
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saleRequest  true  "Sale details"
// @Success      200   {object}  domain.Transaction
// @Failure      409   {object}  map[string]string
// @Router       /api/transactions [post]
func (h *TransactionHandler) RecordSale(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.SaleInput{ClientID: req.ClientID, Paid: req.Paid}
	for _, item := range req.Items {
		input.Items = append(input.Items, ports.SaleItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Type:      item.Type,
		})
	}

	tx, err := h.service.RecordSale(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tx)
}

// PayLoan applies a payment against a client's outstanding loan.
//
// @Summary      Record a loan payment
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loanPaymentRequest  true  "Payment details"
// @Success      200   {object}  ports.LoanPaymentResult
// @Router       /api/loans/pay [post]
func (h *TransactionHandler) PayLoan(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req loanPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.RecordLoanPayment(c.Request().Context(), actor, req.ClientID, req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
