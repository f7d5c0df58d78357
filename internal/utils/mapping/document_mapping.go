package mapping

import (
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/SscSPs/ledger_reconciler/internal/models"
)

func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		CompanyID:   m.CompanyID,
		Number:      m.Number,
		Subtotal:    m.Subtotal,
		TaxAmount:   m.TaxAmount,
		Shipping:    m.Shipping,
		TotalAmount: m.TotalAmount,
		PaidAmount:  m.PaidAmount,
		Status:      domain.SettlementStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:      m.BillID,
		CompanyID:   m.CompanyID,
		Number:      m.Number,
		Subtotal:    m.Subtotal,
		TaxAmount:   m.TaxAmount,
		Shipping:    m.Shipping,
		TotalAmount: m.TotalAmount,
		PaidAmount:  m.PaidAmount,
		Status:      domain.SettlementStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		CompanyID:   m.CompanyID,
		Direction:   domain.PaymentDirection(m.Direction),
		InvoiceID:   m.InvoiceID,
		BillID:      m.BillID,
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCompanyMember(m models.CompanyMember) domain.CompanyMember {
	return domain.CompanyMember{
		CompanyID:   m.CompanyID,
		UserID:      m.UserID,
		Role:        domain.CompanyRole(m.Role),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
