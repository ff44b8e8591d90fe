package domain

import "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account type accumulates a positive balance on the debit side.
// ASSET and EXPENSE are debit-normal; LIABILITY, EQUITY and REVENUE are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// PLMapping classifies an account into an income statement bucket.
type PLMapping string

const (
	PLNone         PLMapping = "NONE"
	PLRevenue      PLMapping = "REVENUE"
	PLCOGS         PLMapping = "COGS"
	PLOpex         PLMapping = "OPEX"
	PLOtherIncome  PLMapping = "OTHER_INCOME"
	PLOtherExpense PLMapping = "OTHER_EXPENSE"
)

// IsValid reports whether m is one of the known mappings.
func (m PLMapping) IsValid() bool {
	switch m {
	case PLNone, PLRevenue, PLCOGS, PLOpex, PLOtherIncome, PLOtherExpense:
		return true
	}
	return false
}

// CashSource classifies the counter-account of a cash movement for cash-flow sectioning.
type CashSource string

const (
	CashSourceNone CashSource = "NONE"
	CashSourceCFO  CashSource = "CFO"
	CashSourceCFI  CashSource = "CFI"
	CashSourceCFF  CashSource = "CFF"
)

// IsValid reports whether s is one of the known cash sources.
func (s CashSource) IsValid() bool {
	switch s {
	case CashSourceNone, CashSourceCFO, CashSourceCFI, CashSourceCFF:
		return true
	}
	return false
}

// AccountStatus is the activation state of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Usage states reported when an update touches frozen fields.
const (
	AccountStateUnused          = "NO_TRANSACTIONS"
	AccountStateHasTransactions = "HAS_TRANSACTIONS"
)

// MaxAccountCodeLength bounds the business code of an account.
const MaxAccountCodeLength = 20

// Account represents an entry in the chart of accounts.
type Account struct {
	ID              string        `json:"id"`        // surrogate key (UUID)
	AccountID       string        `json:"accountId"` // business code, unique
	Name            string        `json:"name"`      // unique
	Type            AccountType   `json:"type"`
	PLMapping       PLMapping     `json:"plMapping"`
	CashSource      CashSource    `json:"cashSource"`
	IsCashAccount   bool          `json:"isCashAccount"`
	IsCurrent       bool          `json:"isCurrent"`
	Status          AccountStatus `json:"status"`
	HasTransactions bool          `json:"hasTransactions"`
	Description     string        `json:"description"`
	AuditFields
}

// IsActive reports whether the account accepts postings.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// ToggledStatus returns the opposite activation state.
func (a Account) ToggledStatus() AccountStatus {
	if a.Status == AccountActive {
		return AccountInactive
	}
	return AccountActive
}

// FrozenFieldsDiffer reports whether b changes the business code, the type or the cash flag of a.
func (a Account) FrozenFieldsDiffer(b Account) bool {
	return a.AccountID != b.AccountID || a.Type != b.Type || a.IsCashAccount != b.IsCashAccount
}

// FrozenFieldsError is the refusal returned when a used account's frozen fields would change.
func FrozenFieldsError(id string) error {
	return apperrors.NewStateError("account", id, AccountStateHasTransactions, AccountStateUnused)
}

// AccountPatch carries the optional fields of an account update. Nil means "leave unchanged".
type AccountPatch struct {
	AccountID     *string
	Name          *string
	Type          *AccountType
	PLMapping     *PLMapping
	CashSource    *CashSource
	IsCashAccount *bool
	IsCurrent     *bool
	Description   *string
}

// TouchesLockedFields reports whether the patch changes a field that becomes immutable
// once the account has transactions: the business code, the type and the cash flag.
func (p AccountPatch) TouchesLockedFields(a Account) bool {
	if p.AccountID != nil && *p.AccountID != a.AccountID {
		return true
	}
	if p.Type != nil && *p.Type != a.Type {
		return true
	}
	if p.IsCashAccount != nil && *p.IsCashAccount != a.IsCashAccount {
		return true
	}
	return false
}

// Apply copies every provided field onto a and returns the result.
func (p AccountPatch) Apply(a Account) Account {
	if p.AccountID != nil {
		a.AccountID = *p.AccountID
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.PLMapping != nil {
		a.PLMapping = *p.PLMapping
	}
	if p.CashSource != nil {
		a.CashSource = *p.CashSource
	}
	if p.IsCashAccount != nil {
		a.IsCashAccount = *p.IsCashAccount
	}
	if p.IsCurrent != nil {
		a.IsCurrent = *p.IsCurrent
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	return a
}
