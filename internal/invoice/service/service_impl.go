package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dr-data/bolt-generated-invoice-app/internal/cache"
	"github.com/dr-data/bolt-generated-invoice-app/internal/clock"
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/domain"
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/layout"
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/logo"
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/render"
	"github.com/dr-data/bolt-generated-invoice-app/internal/observability/metrics"
	"github.com/dr-data/bolt-generated-invoice-app/pkg/db/pagination"
)

const logoCacheTTL = 15 * time.Minute

// Service orchestrates a full export: validate, compute totals, lay
// out, render, persist. It holds no per-call mutable state; every
// export is a fresh computation.
type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	renderer render.Renderer
	metrics  *metrics.ExportMetrics

	logos cache.Cache[string, *logo.Image]
}

// ServiceParam collects the service dependencies.
type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Renderer render.Renderer
	Metrics  *metrics.ExportMetrics `optional:"true"`
}

// NewService constructs the invoice service.
func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		renderer: p.Renderer,
		metrics:  p.Metrics,
		logos:    cache.NewTTL[string, *logo.Image](),
	}
}

// Export runs one synchronous export. On failure nothing is persisted.
func (s *Service) Export(ctx context.Context, req domain.ExportRequest) (domain.ExportResult, error) {
	started := time.Now()
	result, err := s.export(ctx, req)
	elapsed := time.Since(started)

	switch {
	case err == nil:
		s.metrics.Observe("success", elapsed)
		s.log.Info("invoice exported",
			zap.String("invoice_number", req.Invoice.InvoiceNumber),
			zap.Float64("total", result.Record.Total),
			zap.Duration("elapsed", elapsed),
		)
	case isValidation(err):
		s.metrics.Observe("validation_error", elapsed)
	default:
		s.metrics.Observe("error", elapsed)
		s.log.Warn("invoice export failed",
			zap.String("invoice_number", req.Invoice.InvoiceNumber),
			zap.Error(err),
		)
	}
	return result, err
}

func (s *Service) export(ctx context.Context, req domain.ExportRequest) (domain.ExportResult, error) {
	inv := req.Invoice

	// Derived-field recalculation: a missing invoice date defaults to
	// today, a missing due date is derived from the payment terms.
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = domain.DateOf(s.clock.Now())
	}
	if inv.DueDate.IsZero() {
		if due, ok := domain.DeriveDueDate(inv.InvoiceDate, inv.PaymentTerms); ok {
			inv.DueDate = due
		}
	}

	if err := domain.Validate(inv); err != nil {
		return domain.ExportResult{}, err
	}

	lg, err := s.resolveLogo(req)
	if err != nil {
		return domain.ExportResult{}, err
	}

	breakdown := inv.Breakdown()
	doc := layout.Build(layout.Input{
		Invoice: inv,
		Totals:  breakdown,
		Labels:  req.Labels,
		Logo:    lg,
	})

	pdf, err := s.renderer.Render(doc)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	payload, err := json.Marshal(inv)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("encode invoice payload: %w", err)
	}
	record := domain.InvoiceRecord{
		ID:            s.genID.Generate(),
		InvoiceNumber: inv.InvoiceNumber,
		CompanyName:   inv.CompanyName,
		BillTo:        inv.BillTo,
		InvoiceDate:   inv.InvoiceDate.Time,
		DueDate:       inv.DueDate.Time,
		Total:         breakdown.Total,
		CurrencyCode:  inv.Currency.Code,
		Data:          datatypes.JSON(payload),
		CreatedAt:     s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.ExportResult{}, fmt.Errorf("persist invoice record: %w", err)
	}

	return domain.ExportResult{
		Filename: exportFilename(inv.InvoiceNumber),
		PDF:      pdf,
		Record:   record,
	}, nil
}

// resolveLogo decodes the optional logo, serving repeated uploads from
// the decode cache.
func (s *Service) resolveLogo(req domain.ExportRequest) (*layout.Logo, error) {
	var key string
	switch {
	case len(req.Logo) > 0:
		key = logo.Digest(req.Logo)
	case strings.TrimSpace(req.LogoDataURI) != "":
		key = logo.Digest([]byte(req.LogoDataURI))
	default:
		return nil, nil
	}

	img, ok := s.logos.Get(key)
	if !ok {
		var err error
		if len(req.Logo) > 0 {
			img, err = logo.Decode(req.Logo)
		} else {
			img, err = logo.DecodeDataURI(req.LogoDataURI)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLogo, err)
		}
		s.logos.Set(key, img, logoCacheTTL)
	}

	return &layout.Logo{PNG: img.PNG, Width: img.Width, Height: img.Height}, nil
}

// List pages through past exports, newest first.
func (s *Service) List(ctx context.Context, req domain.ListInvoicesRequest) (domain.ListInvoicesResponse, error) {
	params := req.Params.Normalize()

	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.InvoiceRecord{}).Count(&total).Error; err != nil {
		return domain.ListInvoicesResponse{}, fmt.Errorf("count invoices: %w", err)
	}

	var records []domain.InvoiceRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&records).Error
	if err != nil {
		return domain.ListInvoicesResponse{}, fmt.Errorf("list invoices: %w", err)
	}

	return domain.ListInvoicesResponse{
		PageInfo: pagination.NewPageInfo(params, total),
		Invoices: records,
	}, nil
}

// GetByID loads one past export.
func (s *Service) GetByID(ctx context.Context, id string) (domain.InvoiceRecord, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return domain.InvoiceRecord{}, domain.ErrInvalidInvoiceID
	}

	var record domain.InvoiceRecord
	err = s.db.WithContext(ctx).First(&record, "id = ?", parsed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.InvoiceRecord{}, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return domain.InvoiceRecord{}, fmt.Errorf("load invoice %d: %w", parsed, err)
	}
	return record, nil
}

func isValidation(err error) bool {
	var verr *domain.ValidationError
	return errors.As(err, &verr)
}

// exportFilename builds the download name, keeping it shell and
// header safe.
func exportFilename(number string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(number))
	return "invoice_" + cleaned + ".pdf"
}
