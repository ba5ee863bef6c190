package service

import (
	"context"
	"strings"

	"github.com/mannager/pos-system/internal/api/metrics"
	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/ports"
	"github.com/mannager/pos-system/internal/store"
)

// Client and product registry operations of the LedgerService. Deletions
// live here with the ledger because removing a client cascades into the
// transaction log.

func (s *LedgerService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients := []domain.Client{}
	s.store.View(func(data *store.Data) {
		for _, c := range data.Clients {
			clients = append(clients, *c)
		}
	})
	return clients, nil
}

func (s *LedgerService) CreateClient(ctx context.Context, actor domain.Actor, input ports.ClientInput) (*domain.Client, error) {
	if input.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	var created domain.Client
	err := s.store.Update(func(tx *store.Tx) error {
		client := &domain.Client{
			ID:      tx.NextID(),
			Name:    input.Name,
			Phone:   input.Phone,
			Insurer: input.Insurer,
			Loan:    0,
		}
		tx.Data.Clients = append(tx.Data.Clients, client)
		tx.Notify(domain.NotifyClient, "Client %s added", client.Name)
		created = *client
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("client_id", created.ID).Str("name", created.Name).Msg("client created")
	return &created, nil
}

// UpdateClient shallow-merges the provided fields. The loan balance is
// never writable this way; it only moves through sales and repayments.
func (s *LedgerService) UpdateClient(ctx context.Context, actor domain.Actor, id int64, update ports.ClientUpdate) (*domain.Client, error) {
	var updated domain.Client
	err := s.store.Update(func(tx *store.Tx) error {
		client := tx.Data.FindClient(id)
		if client == nil {
			return domain.ErrClientNotFound
		}
		if update.Name != nil {
			client.Name = *update.Name
		}
		if update.Phone != nil {
			client.Phone = *update.Phone
		}
		if update.Insurer != nil {
			client.Insurer = *update.Insurer
		}
		tx.Notify(domain.NotifyInfo, "Client %s updated", client.Name)
		updated = *client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClient removes a client and every transaction referencing it. The
// cascade is deliberate history loss inherited from the product's rules;
// it only applies once the balance is settled.
func (s *LedgerService) DeleteClient(ctx context.Context, actor domain.Actor, id int64) error {
	err := s.store.Update(func(tx *store.Tx) error {
		client := tx.Data.FindClient(id)
		if client == nil {
			return domain.ErrClientNotFound
		}
		if client.Loan > 0 {
			metrics.LedgerRejectionsTotal.WithLabelValues("client_has_loan").Inc()
			return domain.ErrClientHasLoan
		}

		clients := tx.Data.Clients[:0]
		for _, c := range tx.Data.Clients {
			if c.ID != id {
				clients = append(clients, c)
			}
		}
		tx.Data.Clients = clients

		kept := tx.Data.Transactions[:0]
		for _, t := range tx.Data.Transactions {
			if t.ClientID != id {
				kept = append(kept, t)
			}
		}
		tx.Data.Transactions = kept

		tx.Notify(domain.NotifyWarning, "Client %s deleted", client.Name)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("client_id", id).Msg("client deleted with transaction history")
	return nil
}

// SearchClients matches the query case-insensitively against client names
// and phone numbers.
func (s *LedgerService) SearchClients(ctx context.Context, query string) ([]domain.Client, error) {
	q := strings.ToLower(query)
	matched := []domain.Client{}
	s.store.View(func(data *store.Data) {
		for _, c := range data.Clients {
			if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.Phone, query) {
				matched = append(matched, *c)
			}
		}
	})
	return matched, nil
}

func (s *LedgerService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	s.store.View(func(data *store.Data) {
		for _, p := range data.Products {
			products = append(products, *p)
		}
	})
	return products, nil
}

func (s *LedgerService) CreateProduct(ctx context.Context, actor domain.Actor, input ports.ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	if input.Price < 0 {
		return nil, domain.Validationf("price cannot be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, domain.ErrNegativeStock
	}

	var created domain.Product
	err := s.store.Update(func(tx *store.Tx) error {
		product := &domain.Product{
			ID:    tx.NextID(),
			Name:  input.Name,
			Price: input.Price,
			Type:  input.Type,
			Stock: input.Stock,
		}
		tx.Data.Products = append(tx.Data.Products, product)
		created = *product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return &created, nil
}

func (s *LedgerService) UpdateProduct(ctx context.Context, actor domain.Actor, id int64, update ports.ProductUpdate) (*domain.Product, error) {
	if update.Price != nil && *update.Price < 0 {
		return nil, domain.Validationf("price cannot be negative")
	}

	var updated domain.Product
	err := s.store.Update(func(tx *store.Tx) error {
		product := tx.Data.FindProduct(id)
		if product == nil {
			return domain.ErrProductNotFound
		}
		if update.Name != nil {
			product.Name = *update.Name
		}
		if update.Price != nil {
			product.Price = *update.Price
		}
		if update.Type != nil {
			product.Type = *update.Type
		}
		tx.Notify(domain.NotifyInfo, "Product %s updated", product.Name)
		updated = *product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *LedgerService) DeleteProduct(ctx context.Context, actor domain.Actor, id int64) error {
	return s.store.Update(func(tx *store.Tx) error {
		product := tx.Data.FindProduct(id)
		if product == nil {
			return domain.ErrProductNotFound
		}

		products := tx.Data.Products[:0]
		for _, p := range tx.Data.Products {
			if p.ID != id {
				products = append(products, p)
			}
		}
		tx.Data.Products = products

		tx.Notify(domain.NotifyWarning, "Product %s deleted", product.Name)
		return nil
	})
}

// LowStockProducts returns tracked products at or below the low-stock
// threshold. Untracked products never appear here.
func (s *LedgerService) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	low := []domain.Product{}
	s.store.View(func(data *store.Data) {
		for _, p := range data.Products {
			if p.LowStock() {
				low = append(low, *p)
			}
		}
	})
	return low, nil
}
