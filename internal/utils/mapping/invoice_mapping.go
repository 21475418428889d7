package mapping

import (
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/models"
)

func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		OrganizationID: d.OrganizationID,
		Number:         d.Number,
		CustomerName:   d.CustomerName,
		IssueDate:      d.IssueDate,
		Total:          d.Total,
		PaidAmount:     d.PaidAmount,
		PaymentStatus:  string(d.PaymentStatus),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		OrganizationID: m.OrganizationID,
		Number:         m.Number,
		CustomerName:   m.CustomerName,
		IssueDate:      m.IssueDate,
		Total:          m.Total,
		PaidAmount:     m.PaidAmount,
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelInvoicePayment(d domain.InvoicePayment) models.InvoicePayment {
	return models.InvoicePayment{
		PaymentID:      d.PaymentID,
		InvoiceID:      d.InvoiceID,
		OrganizationID: d.OrganizationID,
		Amount:         d.Amount,
		PaymentDate:    d.PaymentDate,
		PaymentMethod:  d.PaymentMethod,
		Reference:      ToNullString(d.Reference),
		Notes:          ToNullString(d.Notes),
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

func ToDomainInvoicePayment(m models.InvoicePayment) domain.InvoicePayment {
	return domain.InvoicePayment{
		PaymentID:      m.PaymentID,
		InvoiceID:      m.InvoiceID,
		OrganizationID: m.OrganizationID,
		Amount:         m.Amount,
		PaymentDate:    m.PaymentDate,
		PaymentMethod:  m.PaymentMethod,
		Reference:      FromNullString(m.Reference),
		Notes:          FromNullString(m.Notes),
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
