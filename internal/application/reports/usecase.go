package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// InvoiceSource is the backend slice this package reads invoices from.
type InvoiceSource interface {
	ListInvoices(ctx context.Context, q dto.InvoiceQuery) ([]entity.InvoiceSummary, error)
}

// ServerReports fetches the pre-aggregated reports the backend owns.
type ServerReports interface {
	CustomerInsights(ctx context.Context, start, end time.Time, dormantDays, limit int, includeNever bool) (*dto.CustomerInsights, error)
	ServicePerformance(ctx context.Context, start, end time.Time, limit int) (*dto.ServicePerformance, error)
}

// Overview is one fully resolved report range: the fetched invoices plus
// both client-side aggregations over them.
type Overview struct {
	Start    time.Time
	End      time.Time
	Summary  Summary
	PerDay   []DayBucket
	Invoices []entity.InvoiceSummary
}

// UseCase resolves range presets against the backend and aggregates
// locally. loc decides which calendar the day buckets use.
type UseCase struct {
	invoices InvoiceSource
	server   ServerReports
	loc      *time.Location
}

// NewUseCase builds the use case; nil loc means the viewer's local zone.
func NewUseCase(invoices InvoiceSource, server ServerReports, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{invoices: invoices, server: server, loc: loc}
}

// RangeOverview fetches the invoices for the preset and aggregates them.
func (uc *UseCase) RangeOverview(ctx context.Context, preset RangePreset) (*Overview, error) {
	start, end := RangeFor(preset, time.Now().In(uc.loc))

	invoices, err := uc.invoices.ListInvoices(ctx, dto.InvoiceQuery{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("reports: list invoices %s: %w", preset, err)
	}

	return &Overview{
		Start:    start,
		End:      end,
		Summary:  Summarize(invoices),
		PerDay:   BucketByLocalDay(invoices, uc.loc),
		Invoices: invoices,
	}, nil
}

// CustomerInsights resolves the preset and delegates to the server report.
func (uc *UseCase) CustomerInsights(ctx context.Context, preset RangePreset, dormantDays, limit int) (*dto.CustomerInsights, error) {
	start, end := RangeFor(preset, time.Now().In(uc.loc))
	out, err := uc.server.CustomerInsights(ctx, start, end, dormantDays, limit, true)
	if err != nil {
		return nil, fmt.Errorf("reports: customer insights: %w", err)
	}
	return out, nil
}

// ServicePerformance resolves the preset and delegates to the server report.
func (uc *UseCase) ServicePerformance(ctx context.Context, preset RangePreset, limit int) (*dto.ServicePerformance, error) {
	start, end := RangeFor(preset, time.Now().In(uc.loc))
	out, err := uc.server.ServicePerformance(ctx, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reports: service performance: %w", err)
	}
	return out, nil
}
