package domain

import (
	"context"
	"errors"

	"github.com/dr-data/bolt-generated-invoice-app/pkg/db/pagination"
)

// ExportRequest carries everything a single export needs. The invoice
// is treated as immutable for the duration of the call.
type ExportRequest struct {
	Invoice InvoiceData `json:"invoice"`
	Labels  LabelSet    `json:"labels"`
	// Logo holds the raw encoded bytes of an optional logo image.
	// LogoDataURI is the inline alternative used by JSON clients.
	Logo        []byte `json:"-"`
	LogoDataURI string `json:"logo"`
}

// ExportResult is a finished document plus the persisted record.
type ExportResult struct {
	Filename string
	PDF      []byte
	Record   InvoiceRecord
}

// ListInvoicesRequest pages through the export history.
type ListInvoicesRequest struct {
	pagination.Params
}

// ListInvoicesResponse is one page of past exports.
type ListInvoicesResponse struct {
	pagination.PageInfo
	Invoices []InvoiceRecord `json:"invoices"`
}

// Service exports invoices and serves the export history.
type Service interface {
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
	List(ctx context.Context, req ListInvoicesRequest) (ListInvoicesResponse, error)
	GetByID(ctx context.Context, id string) (InvoiceRecord, error)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrInvalidLogo      = errors.New("invalid_logo")
	ErrRenderFailed     = errors.New("render_failed")
)
