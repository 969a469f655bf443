package rest

import (
	"context"
	"net/http"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// ListCustomers fetches customers, optionally filtered by a free-text
// query. The response may be a bare array or a pagination envelope; both
// come back as the canonical Page.
func (c *Client) ListCustomers(ctx context.Context, query string) (dto.Page[entity.Customer], error) {
	params := map[string]string{}
	if query != "" {
		params["query"] = query
	}
	raw, err := c.doRaw(ctx, http.MethodGet, "/api/customers", params)
	if err != nil {
		return dto.Page[entity.Customer]{}, err
	}
	return decodePage[entity.Customer](raw)
}

// CreateCustomer adds a customer. The backend rejects a duplicate phone
// within the shop.
func (c *Client) CreateCustomer(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	var out entity.Customer
	if err := c.do(ctx, http.MethodPost, "/api/customers", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomer fetches one customer by id.
func (c *Client) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	var out entity.Customer
	if err := c.do(ctx, http.MethodGet, "/api/customers/"+id, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer patches name, phone, or notes.
func (c *Client) UpdateCustomer(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	var out entity.Customer
	if err := c.do(ctx, http.MethodPatch, "/api/customers/"+id, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
