package payments

import (
	"net/url"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
)

// RedirectBuilder produces the checkout handle returned to a payer. No gateway is contacted:
// the handle points at <base>/payment?transactionId=<id>.
type RedirectBuilder struct {
	// BaseURL overrides the per-gateway default https://<gateway>.com when set.
	BaseURL string
}

// CheckoutURL returns the redirect for transactionID at gateway.
func (b RedirectBuilder) CheckoutURL(gateway domain.Gateway, transactionID string) string {
	base := b.BaseURL
	if base == "" {
		base = "https://" + string(gateway) + ".com"
	}
	query := url.Values{}
	query.Set("transactionId", transactionID)
	return base + "/payment?" + query.Encode()
}
