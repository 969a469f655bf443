package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/naayikhata/khata-go/internal/application/dto"
)

// CustomerInsights fetches the server-aggregated customer report: repeat
// customers, top customers by net, and dormant customers for the window.
func (c *Client) CustomerInsights(ctx context.Context, start, end time.Time, dormantDays, limit int, includeNever bool) (*dto.CustomerInsights, error) {
	params := map[string]string{
		"start":         start.UTC().Format(time.RFC3339),
		"end":           end.UTC().Format(time.RFC3339),
		"dormant_days":  strconv.Itoa(dormantDays),
		"limit":         strconv.Itoa(limit),
		"include_never": strconv.FormatBool(includeNever),
	}
	var out dto.CustomerInsights
	if err := c.do(ctx, http.MethodGet, "/api/reports/customers", nil, &out, params); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServicePerformance fetches the server-aggregated service report: top
// services by revenue and by quantity.
func (c *Client) ServicePerformance(ctx context.Context, start, end time.Time, limit int) (*dto.ServicePerformance, error) {
	params := map[string]string{
		"start": start.UTC().Format(time.RFC3339),
		"end":   end.UTC().Format(time.RFC3339),
		"limit": strconv.Itoa(limit),
	}
	var out dto.ServicePerformance
	if err := c.do(ctx, http.MethodGet, "/api/reports/services", nil, &out, params); err != nil {
		return nil, err
	}
	return &out, nil
}
