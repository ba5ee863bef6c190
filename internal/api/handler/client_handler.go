package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/ports"
)

type ClientHandler struct {
	service ports.LedgerService
}

func NewClientHandler(service ports.LedgerService) *ClientHandler {
	return &ClientHandler{service: service}
}

type createClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Insurer string `json:"insurer"`
}

type updateClientRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Insurer *string `json:"insurer"`
}

// List returns all clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Client
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Create adds a client with a zero loan balance.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      200   {object}  domain.Client
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.CreateClient(c.Request().Context(), actor, ports.ClientInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Insurer: req.Insurer,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update shallow-merges the provided fields into a client.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to merge"
// @Success      200   {object}  domain.Client
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	client, err := h.service.UpdateClient(c.Request().Context(), actor, id, ports.ClientUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Insurer: req.Insurer,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Delete removes a client and their transaction history. Rejected while
// the client still carries a loan.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Client id"
// @Success      200  {object}  statusResponse
// @Failure      409  {object}  map[string]string
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteClient(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Client deleted successfully"})
}

// Search matches clients by name or phone substring.
//
// @Summary      Search clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        query  path  string  true  "Name or phone fragment"
// @Success      200  {array}  domain.Client
// @Router       /api/clients/search/{query} [get]
func (h *ClientHandler) Search(c echo.Context) error {
	clients, err := h.service.SearchClients(c.Request().Context(), c.Param("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Loans returns the transactions that touched a client's balance.
//
// @Summary      Client loan history
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Client id"
// @Success      200  {array}  domain.Transaction
// @Router       /api/clients/{id}/loans [get]
func (h *ClientHandler) Loans(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	history, err := h.service.LoanHistory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// Purchases returns a client's sales newest-first.
//
// @Summary      Client purchase history
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Client id"
// @Success      200  {array}  ports.PurchaseRecord
// @Router       /api/clients/{id}/purchases [get]
func (h *ClientHandler) Purchases(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	records, err := h.service.PurchaseHistory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
