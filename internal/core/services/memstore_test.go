package services_test

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
)

// memStore is an in-memory ledger store. Every repository port and the unit of work are backed by it.
type memStore struct {
	mu       sync.Mutex
	accounts map[string][]domain.Account
	entries  map[string]domain.JournalEntry
	lines    map[string][]domain.JournalLine
	invoices map[string]domain.Invoice
	bills    map[string]domain.Bill
	payments map[string]domain.Payment
	audit    map[string][]domain.AuditRecord
	members  map[string]domain.CompanyMember
	failures map[string]error

	// beforeInsert runs inside InsertLinesIfAbsent before the existence check.
	beforeInsert func(s *memStore, entryID string)
}

var (
	_ portsrepo.AccountReader            = (*memStore)(nil)
	_ portsrepo.JournalRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.DocumentRepositoryFacade = (*memStore)(nil)
	_ portsrepo.AuditRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.MembershipReader         = (*memStore)(nil)
	_ portsrepo.UnitOfWork               = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string][]domain.Account{},
		entries:  map[string]domain.JournalEntry{},
		lines:    map[string][]domain.JournalLine{},
		invoices: map[string]domain.Invoice{},
		bills:    map[string]domain.Bill{},
		payments: map[string]domain.Payment{},
		audit:    map[string][]domain.AuditRecord{},
		members:  map[string]domain.CompanyMember{},
		failures: map[string]error{},
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    s,
		JournalRepo:    s,
		DocumentRepo:   s,
		AuditRepo:      s,
		MembershipRepo: s,
	}
}

// failOn makes the named repository method return err.
func (s *memStore) failOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *memStore) addAccounts(companyID string, accounts ...domain.Account) {
	for i := range accounts {
		accounts[i].CompanyID = companyID
	}
	s.accounts[companyID] = append(s.accounts[companyID], accounts...)
}

func (s *memStore) addMember(companyID, userID string, role domain.CompanyRole) {
	s.members[companyID+"|"+userID] = domain.CompanyMember{CompanyID: companyID, UserID: userID, Role: role}
}

func (s *memStore) addEntry(entry domain.JournalEntry, lines ...domain.JournalLine) {
	if entry.Version == 0 {
		entry.Version = 1
	}
	s.entries[entry.EntryID] = entry
	if len(lines) > 0 {
		for i := range lines {
			lines[i].EntryID = entry.EntryID
		}
		s.lines[entry.EntryID] = lines
	}
}

func (s *memStore) entry(id string) domain.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[id]
}

func (s *memStore) entryLines(id string) []domain.JournalLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines[id])
}

// --- AccountReader ---

func (s *memStore) ListAccountsByCompany(_ context.Context, companyID string) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["ListAccountsByCompany"]; err != nil {
		return nil, err
	}
	return slices.Clone(s.accounts[companyID]), nil
}

func (s *memStore) FindAccountsByIDs(_ context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindAccountsByIDs"]; err != nil {
		return nil, err
	}
	out := map[string]domain.Account{}
	for _, a := range s.accounts[companyID] {
		if slices.Contains(accountIDs, a.AccountID) {
			out[a.AccountID] = a
		}
	}
	return out, nil
}

// --- JournalRepositoryFacade ---

func (s *memStore) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindEntryByID"]; err != nil {
		return nil, err
	}
	e, ok := s.entries[entryID]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "journal_entry", Key: entryID}
	}
	return &e, nil
}

func (s *memStore) FindLinesByEntryID(_ context.Context, entryID string) ([]domain.JournalLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindLinesByEntryID"]; err != nil {
		return nil, err
	}
	return slices.Clone(s.lines[entryID]), nil
}

func (s *memStore) HasLines(_ context.Context, entryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["HasLines"]; err != nil {
		return false, err
	}
	return len(s.lines[entryID]) > 0, nil
}

func (s *memStore) InsertLinesIfAbsent(_ context.Context, entryID string, lines []domain.JournalLine) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["InsertLinesIfAbsent"]; err != nil {
		return false, err
	}
	if s.beforeInsert != nil {
		s.beforeInsert(s, entryID)
	}
	if len(s.lines[entryID]) > 0 {
		return false, nil
	}
	s.lines[entryID] = slices.Clone(lines)
	return true, nil
}

func (s *memStore) ReplaceEntry(_ context.Context, entry domain.JournalEntry, lines []domain.JournalLine, expectedVersion int64) (*domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["ReplaceEntry"]; err != nil {
		return nil, err
	}
	stored, ok := s.entries[entry.EntryID]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "journal_entry", Key: entry.EntryID}
	}
	if expectedVersion != 0 && stored.Version != expectedVersion {
		return nil, apperrors.ErrConflict
	}
	entry.Version = stored.Version + 1
	s.entries[entry.EntryID] = entry
	s.lines[entry.EntryID] = slices.Clone(lines)
	return &entry, nil
}

// --- DocumentRepositoryFacade ---

func (s *memStore) FindInvoiceByID(_ context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindInvoiceByID"]; err != nil {
		return nil, err
	}
	inv, ok := s.invoices[invoiceID]
	if !ok || inv.CompanyID != companyID {
		return nil, &apperrors.NotFoundError{Resource: "invoice", Key: invoiceID}
	}
	return &inv, nil
}

func (s *memStore) FindBillByID(_ context.Context, companyID, billID string) (*domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindBillByID"]; err != nil {
		return nil, err
	}
	bill, ok := s.bills[billID]
	if !ok || bill.CompanyID != companyID {
		return nil, &apperrors.NotFoundError{Resource: "bill", Key: billID}
	}
	return &bill, nil
}

func (s *memStore) FindPaymentByID(_ context.Context, companyID, paymentID string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindPaymentByID"]; err != nil {
		return nil, err
	}
	p, ok := s.payments[paymentID]
	if !ok || p.CompanyID != companyID {
		return nil, &apperrors.NotFoundError{Resource: "payment", Key: paymentID}
	}
	return &p, nil
}

func (s *memStore) FindPaymentByInvoiceID(_ context.Context, companyID, invoiceID string) (*domain.Payment, error) {
	return s.findLinkedPayment(companyID, invoiceID, func(p domain.Payment) *string { return p.InvoiceID })
}

func (s *memStore) FindPaymentByBillID(_ context.Context, companyID, billID string) (*domain.Payment, error) {
	return s.findLinkedPayment(companyID, billID, func(p domain.Payment) *string { return p.BillID })
}

func (s *memStore) findLinkedPayment(companyID, docID string, link func(domain.Payment) *string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindLinkedPayment"]; err != nil {
		return nil, err
	}
	for _, id := range slices.Sorted(maps.Keys(s.payments)) {
		p := s.payments[id]
		if l := link(p); p.CompanyID == companyID && l != nil && *l == docID {
			return &p, nil
		}
	}
	return nil, &apperrors.NotFoundError{Resource: "payment", Key: docID}
}

func (s *memStore) UpdateInvoiceTotal(_ context.Context, companyID, invoiceID string, total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["UpdateInvoiceTotal"]; err != nil {
		return err
	}
	inv, ok := s.invoices[invoiceID]
	if !ok || inv.CompanyID != companyID {
		return &apperrors.NotFoundError{Resource: "invoice", Key: invoiceID}
	}
	inv.TotalAmount = total
	s.invoices[invoiceID] = inv
	return nil
}

func (s *memStore) UpdateInvoiceSettlement(_ context.Context, companyID, invoiceID string, paid decimal.Decimal, status domain.SettlementStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["UpdateInvoiceSettlement"]; err != nil {
		return err
	}
	inv, ok := s.invoices[invoiceID]
	if !ok || inv.CompanyID != companyID {
		return &apperrors.NotFoundError{Resource: "invoice", Key: invoiceID}
	}
	inv.PaidAmount = paid
	inv.Status = status
	s.invoices[invoiceID] = inv
	return nil
}

func (s *memStore) UpdateBillTotal(_ context.Context, companyID, billID string, total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["UpdateBillTotal"]; err != nil {
		return err
	}
	bill, ok := s.bills[billID]
	if !ok || bill.CompanyID != companyID {
		return &apperrors.NotFoundError{Resource: "bill", Key: billID}
	}
	bill.TotalAmount = total
	s.bills[billID] = bill
	return nil
}

func (s *memStore) UpdateBillSettlement(_ context.Context, companyID, billID string, paid decimal.Decimal, status domain.SettlementStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["UpdateBillSettlement"]; err != nil {
		return err
	}
	bill, ok := s.bills[billID]
	if !ok || bill.CompanyID != companyID {
		return &apperrors.NotFoundError{Resource: "bill", Key: billID}
	}
	bill.PaidAmount = paid
	bill.Status = status
	s.bills[billID] = bill
	return nil
}

func (s *memStore) UpdatePaymentAmount(_ context.Context, companyID, paymentID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["UpdatePaymentAmount"]; err != nil {
		return err
	}
	p, ok := s.payments[paymentID]
	if !ok || p.CompanyID != companyID {
		return &apperrors.NotFoundError{Resource: "payment", Key: paymentID}
	}
	p.Amount = amount
	s.payments[paymentID] = p
	return nil
}

// --- AuditRepositoryFacade ---

func (s *memStore) ListAuditRecordsByEntry(_ context.Context, entryID string) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["ListAuditRecordsByEntry"]; err != nil {
		return nil, err
	}
	return slices.Clone(s.audit[entryID]), nil
}

func (s *memStore) FindLatestAuditRecord(_ context.Context, entryID string) (*domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindLatestAuditRecord"]; err != nil {
		return nil, err
	}
	records := s.audit[entryID]
	if len(records) == 0 {
		return nil, &apperrors.NotFoundError{Resource: "audit_record", Key: entryID}
	}
	latest := records[len(records)-1]
	return &latest, nil
}

func (s *memStore) AppendAuditRecord(_ context.Context, record domain.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["AppendAuditRecord"]; err != nil {
		return err
	}
	s.audit[record.EntryID] = append(s.audit[record.EntryID], record)
	return nil
}

// --- MembershipReader ---

func (s *memStore) FindCompanyMember(_ context.Context, companyID, userID string) (*domain.CompanyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["FindCompanyMember"]; err != nil {
		return nil, err
	}
	m, ok := s.members[companyID+"|"+userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

// --- UnitOfWork ---

// WithinTx snapshots the ledger and document state and restores it when fn fails.
func (s *memStore) WithinTx(_ context.Context, fn func(repos portsrepo.RepositoryProvider) error) error {
	s.mu.Lock()
	entries := maps.Clone(s.entries)
	lines := maps.Clone(s.lines)
	invoices := maps.Clone(s.invoices)
	bills := maps.Clone(s.bills)
	payments := maps.Clone(s.payments)
	s.mu.Unlock()

	if err := fn(s.provider()); err != nil {
		s.mu.Lock()
		s.entries, s.lines = entries, lines
		s.invoices, s.bills, s.payments = invoices, bills, payments
		s.mu.Unlock()
		return err
	}
	return nil
}
