package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/dr-data/bolt-generated-invoice-app/internal/invoice/domain"
)

// ErrInvalidRequest covers malformed request bodies.
var ErrInvalidRequest = errors.New("invalid_request")

// AbortWithError translates domain errors into one JSON error response
// per request. Generation failures surface as a single notification;
// no partial document is ever written to the response.
func AbortWithError(c *gin.Context, err error) {
	var verr *invoicedomain.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, invoicedomain.ErrInvalidInvoiceID):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, invoicedomain.ErrInvoiceNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, invoicedomain.ErrInvalidLogo):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": invoicedomain.ErrInvalidLogo.Error()})
	case errors.Is(err, invoicedomain.ErrRenderFailed):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": invoicedomain.ErrRenderFailed.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
