package rest

import (
	"context"
	"net/http"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// ListServices returns the shop's full price list, inactive entries
// included; composing screens filter on Active themselves.
func (c *Client) ListServices(ctx context.Context) ([]entity.Service, error) {
	var out []entity.Service
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateService adds a price-list entry.
func (c *Client) CreateService(ctx context.Context, in dto.CreateServiceRequest) (*entity.Service, error) {
	var out entity.Service
	if err := c.do(ctx, http.MethodPost, "/api/services", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateService patches name, price, or active flag. Changing a price never
// touches bills already composed; they hold their own snapshots.
func (c *Client) UpdateService(ctx context.Context, id string, in dto.UpdateServiceRequest) (*entity.Service, error) {
	var out entity.Service
	if err := c.do(ctx, http.MethodPatch, "/api/services/"+id, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
