package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/dr-data/bolt-generated-invoice-app/internal/invoice/domain"
)

// ExportInvoice renders and returns the PDF for one invoice. Clients
// either post JSON (logo as data URI) or multipart form data with an
// `invoice` JSON field and an optional `logo` file.
func (s *Server) ExportInvoice(c *gin.Context) {
	req, err := s.parseExportRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.invoiceSvc.Export(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Header("X-Invoice-Id", result.Record.ID.String())
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

func (s *Server) parseExportRequest(c *gin.Context) (invoicedomain.ExportRequest, error) {
	var req invoicedomain.ExportRequest

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		return req, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	values := form.Value["invoice"]
	if len(values) == 0 {
		return req, fmt.Errorf("%w: missing invoice field", ErrInvalidRequest)
	}
	if err := json.Unmarshal([]byte(values[0]), &req.Invoice); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if labels := form.Value["labels"]; len(labels) > 0 {
		if err := json.Unmarshal([]byte(labels[0]), &req.Labels); err != nil {
			return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}

	// Only the first uploaded file counts; extra drops are ignored.
	if files := form.File["logo"]; len(files) > 0 {
		file := files[0]
		if max := s.cfg.Export.MaxLogoBytes; max > 0 && file.Size > max {
			return req, fmt.Errorf("%w: logo exceeds %d bytes", ErrInvalidRequest, max)
		}
		opened, err := file.Open()
		if err != nil {
			return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		defer opened.Close()
		raw, err := io.ReadAll(opened)
		if err != nil {
			return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		req.Logo = raw
	}

	return req, nil
}

// ListInvoices pages through the export history.
func (s *Server) ListInvoices(c *gin.Context) {
	var req invoicedomain.ListInvoicesRequest
	if err := c.ShouldBindQuery(&req.Params); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetInvoice loads one history record.
func (s *Server) GetInvoice(c *gin.Context) {
	record, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetLabels returns the default label table so the form layer can seed
// its editable labels.
func (s *Server) GetLabels(c *gin.Context) {
	c.JSON(http.StatusOK, invoicedomain.DefaultLabels())
}

type deriveDueDateRequest struct {
	InvoiceDate  invoicedomain.Date `json:"invoiceDate"`
	PaymentTerms string             `json:"paymentTerms"`
}

// DeriveDueDate recomputes the due date from the invoice date and the
// payment terms, the explicit recalculation the form triggers when
// either input changes.
func (s *Server) DeriveDueDate(c *gin.Context) {
	var req deriveDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	due, ok := invoicedomain.DeriveDueDate(req.InvoiceDate, req.PaymentTerms)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"dueDate": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dueDate": due})
}
