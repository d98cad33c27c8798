package billing

import (
	"fmt"
	"strings"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

// ShareLinkBuilder builds a WhatsApp click-to-chat link for a customer
// phone number and a prefilled message.
type ShareLinkBuilder interface {
	ShareLink(phone, message string) string
}

// WhatsAppUseCase produces a share link carrying the invoice summary, for
// the "send on WhatsApp" action of the billing screen.
type WhatsAppUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	businessRepo repository.BusinessRepository
	links        ShareLinkBuilder
}

// NewWhatsAppUseCase builds the use case.
func NewWhatsAppUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	businessRepo repository.BusinessRepository,
	links ShareLinkBuilder,
) *WhatsAppUseCase {
	return &WhatsAppUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		businessRepo: businessRepo,
		links:        links,
	}
}

// ShareInvoice composes the invoice summary message and returns the link.
// The customer must have a phone number on file.
func (uc *WhatsAppUseCase) ShareInvoice(businessID, invoiceID string) (*dto.WhatsAppShareResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.Phone == "" {
		return nil, fmt.Errorf("%w: customer has no phone number", domain.ErrInvalidInput)
	}
	business, err := uc.businessRepo.GetByID(businessID)
	if err != nil || business == nil {
		return nil, domain.ErrNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Invoice %s%s from %s\n", inv.Prefix, inv.Number, business.Name)
	fmt.Fprintf(&b, "Date: %s\n", inv.Date.Format("02/01/2006"))
	fmt.Fprintf(&b, "Taxable: ₹%s\n", inv.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "CGST: ₹%s  SGST: ₹%s\n", inv.CGSTTotal.StringFixed(2), inv.SGSTTotal.StringFixed(2))
	fmt.Fprintf(&b, "Total: ₹%s", inv.GrandTotal.StringFixed(2))

	return &dto.WhatsAppShareResponse{Link: uc.links.ShareLink(customer.Phone, b.String())}, nil
}
