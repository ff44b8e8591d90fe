// Package seed loads a demo chart of accounts, the 2025 fiscal calendar and
// a month of postings into an empty ledger.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// SystemUserID is recorded as the author of every seeded record.
const SystemUserID = "00000000-0000-0000-0000-000000000000"

const (
	seedYear       = 2025
	closedThrough  = time.June
	revenueBudget  = 15000
	cogsBudget     = 2000
	opexBudget     = 8000
	inactiveSeeded = "2500"
)

type accountSeed struct {
	code       string
	name       string
	typ        domain.AccountType
	pl         domain.PLMapping
	cashSource domain.CashSource
	current    bool
	cash       bool
}

var chartOfAccounts = []accountSeed{
	{"1000", "Cash", domain.Asset, domain.PLNone, domain.CashSourceCFO, true, true},
	{"1100", "Accounts Receivable", domain.Asset, domain.PLNone, domain.CashSourceNone, true, false},
	{"1200", "Office Supplies", domain.Asset, domain.PLNone, domain.CashSourceNone, true, false},
	{"1500", "Computer Equipment", domain.Asset, domain.PLNone, domain.CashSourceCFI, false, false},
	{"1600", "Strategic Investments", domain.Asset, domain.PLNone, domain.CashSourceCFF, false, false},
	{"2000", "Accounts Payable", domain.Liability, domain.PLNone, domain.CashSourceNone, true, false},
	{"2100", "Accrued Expenses", domain.Liability, domain.PLNone, domain.CashSourceNone, true, false},
	{"2500", "Old Bank Loan", domain.Liability, domain.PLNone, domain.CashSourceNone, false, false},
	{"3000", "Owner's Capital", domain.Equity, domain.PLNone, domain.CashSourceCFF, false, false},
	{"4000", "Service Revenue", domain.Revenue, domain.PLRevenue, domain.CashSourceNone, false, false},
	{"4100", "Interest Income", domain.Revenue, domain.PLOtherIncome, domain.CashSourceNone, false, false},
	{"5000", "Rent Expense", domain.Expense, domain.PLOpex, domain.CashSourceNone, false, false},
	{"5100", "Salaries Expense", domain.Expense, domain.PLOpex, domain.CashSourceNone, false, false},
	{"5200", "Advertising Expense", domain.Expense, domain.PLOpex, domain.CashSourceNone, false, false},
	{"5300", "Utilities Expense", domain.Expense, domain.PLOpex, domain.CashSourceNone, false, false},
	{"5400", "Cost of Goods Sold", domain.Expense, domain.PLCOGS, domain.CashSourceNone, false, false},
	{"5900", "Penalties & Fines", domain.Expense, domain.PLOtherExpense, domain.CashSourceNone, false, false},
}

// line is one side of a seeded posting, keyed by account code.
type line struct {
	code   string
	debit  int64
	credit int64
}

type postingSeed struct {
	date        string
	description string
	lines       []line
}

var julyPostings = []postingSeed{
	{"2025-07-01", "Owner's cash investment", []line{{"1000", 50000, 0}, {"3000", 0, 50000}}},
	{"2025-07-02", "Payment of office rent", []line{{"5000", 3000, 0}, {"1000", 0, 3000}}},
	{"2025-07-03", "Purchase of office supplies on account", []line{{"1200", 800, 0}, {"2000", 0, 800}}},
	{"2025-07-05", "Cash received for consulting services", []line{{"1000", 7500, 0}, {"4000", 0, 7500}}},
	{"2025-07-08", "Purchase of computer equipment", []line{{"1500", 15000, 0}, {"1000", 0, 5000}, {"2000", 0, 10000}}},
	{"2025-07-10", "Payment for advertising", []line{{"5200", 400, 0}, {"1000", 0, 400}}},
	{"2025-07-12", "Consulting services performed on credit", []line{{"1100", 6000, 0}, {"4000", 0, 6000}}},
	{"2025-07-15", "Salary payment", []line{{"5100", 4000, 0}, {"1000", 0, 4000}}},
	{"2025-07-18", "Payment to supplier for previous purchase", []line{{"2000", 800, 0}, {"1000", 0, 800}}},
	{"2025-07-20", "Partial collection of accounts receivable", []line{{"1000", 3000, 0}, {"1100", 0, 3000}}},
	{"2025-07-25", "Owner's withdrawal for personal use", []line{{"3000", 1500, 0}, {"1000", 0, 1500}}},
	{"2025-07-28", "Utilities expense payable next month", []line{{"5300", 600, 0}, {"2100", 0, 600}}},
}

// Run seeds the ledger through the public services. It does nothing when any
// account already exists.
func Run(ctx context.Context, svc *portssvc.ServiceContainer, logger *slog.Logger) error {
	existing, err := svc.Account.ListAccounts(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("seed: check existing accounts: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Ledger already has accounts, skipping demo seed")
		return nil
	}

	logger.Info("Seeding demo ledger data")
	if err := seedPeriods(ctx, svc.Period); err != nil {
		return err
	}
	refs, err := seedAccounts(ctx, svc.Account)
	if err != nil {
		return err
	}
	if err := seedPostings(ctx, svc.Journal, refs); err != nil {
		return err
	}
	logger.Info("Demo ledger data seeded",
		slog.Int("accounts", len(chartOfAccounts)),
		slog.Int("transactions", len(julyPostings)))
	return nil
}

func seedPeriods(ctx context.Context, periods portssvc.PeriodSvcFacade) error {
	revenue := decimal.NewFromInt(revenueBudget)
	cogs := decimal.NewFromInt(cogsBudget)
	opex := decimal.NewFromInt(opexBudget)

	for m := time.January; m <= time.December; m++ {
		start := time.Date(seedYear, m, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		p, err := periods.CreatePeriod(ctx, dto.CreatePeriodRequest{
			Label:         start.Format("January 2006"),
			StartDate:     start.Format(dto.DateLayout),
			EndDate:       end.Format(dto.DateLayout),
			RevenueBudget: &revenue,
			COGSBudget:    &cogs,
			OpexBudget:    &opex,
		}, SystemUserID)
		if err != nil {
			return fmt.Errorf("seed: create period %s: %w", start.Format("January 2006"), err)
		}
		if m > closedThrough {
			continue
		}
		if _, err := periods.StartClosing(ctx, p.ID, SystemUserID); err != nil {
			return fmt.Errorf("seed: start closing %s: %w", p.Label, err)
		}
		if _, err := periods.LockPeriod(ctx, p.ID, SystemUserID); err != nil {
			return fmt.Errorf("seed: lock %s: %w", p.Label, err)
		}
	}
	return nil
}

// seedAccounts creates the chart and returns account codes mapped to surrogate keys.
func seedAccounts(ctx context.Context, accounts portssvc.AccountSvcFacade) (map[string]string, error) {
	refs := make(map[string]string, len(chartOfAccounts))
	for _, a := range chartOfAccounts {
		current := a.current
		created, err := accounts.CreateAccount(ctx, dto.CreateAccountRequest{
			AccountID:     a.code,
			Name:          a.name,
			AccountType:   a.typ,
			PLMapping:     a.pl,
			CashSource:    a.cashSource,
			IsCashAccount: a.cash,
			IsCurrent:     &current,
		}, SystemUserID)
		if err != nil {
			return nil, fmt.Errorf("seed: create account %s: %w", a.code, err)
		}
		refs[a.code] = created.ID
	}
	if _, err := accounts.ToggleActive(ctx, refs[inactiveSeeded], SystemUserID); err != nil {
		return nil, fmt.Errorf("seed: deactivate account %s: %w", inactiveSeeded, err)
	}
	return refs, nil
}

func seedPostings(ctx context.Context, journal portssvc.JournalSvcFacade, refs map[string]string) error {
	for _, p := range julyPostings {
		req := dto.PostTransactionRequest{
			TransactionDate: p.date,
			Description:     p.description,
			Entries:         make([]dto.JournalEntryRequest, len(p.lines)),
		}
		for i, l := range p.lines {
			req.Entries[i] = dto.JournalEntryRequest{
				AccountRef:   refs[l.code],
				DebitAmount:  decimal.NewFromInt(l.debit),
				CreditAmount: decimal.NewFromInt(l.credit),
			}
		}
		if _, err := journal.PostTransaction(ctx, req, SystemUserID); err != nil {
			return fmt.Errorf("seed: post %q: %w", p.description, err)
		}
	}
	return nil
}
