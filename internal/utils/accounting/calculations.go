package accounting

import (
	"fmt"
	"sort"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance returns the balance of an account on its normal side:
// debits minus credits for debit-normal types, credits minus debits otherwise.
func SignedBalance(accountType domain.AccountType, debits, credits decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

// ValidateEntriesBalance checks that the debit and credit sides of entries are exactly equal.
func ValidateEntriesBalance(entries []domain.JournalEntry) error {
	totals := domain.SumEntries(entries)
	if !totals.Balanced() {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalanced, totals.Debits.String(), totals.Credits.String())
	}
	return nil
}

// BuildTrialBalance places each account's signed balance in its normal column, or in the
// opposite column flagged abnormal when negative, and totals both columns.
func BuildTrialBalance(rows []domain.AccountTotals) ([]domain.TrialBalanceRow, decimal.Decimal, decimal.Decimal) {
	sorted := append([]domain.AccountTotals(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].AccountID < sorted[j].AccountID })

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	out := make([]domain.TrialBalanceRow, 0, len(sorted))

	for _, r := range sorted {
		row := domain.TrialBalanceRow{
			AccountID:    r.AccountID,
			AccountName:  r.AccountName,
			AccountType:  r.AccountType,
			TotalDebits:  r.Debits,
			TotalCredits: r.Credits,
		}
		debitNormal := r.AccountType.IsDebitNormal()
		signed := SignedBalance(r.AccountType, r.Debits, r.Credits)

		amount := signed
		onDebitSide := debitNormal
		if signed.IsNegative() {
			amount = signed.Abs()
			onDebitSide = !debitNormal
			row.Abnormal = true
		}

		if onDebitSide {
			row.DebitBalance = &amount
			totalDebits = totalDebits.Add(amount)
		} else {
			row.CreditBalance = &amount
			totalCredits = totalCredits.Add(amount)
		}
		out = append(out, row)
	}
	return out, totalDebits, totalCredits
}

// RunningBalances walks lines already ordered by account then posting order, seeding each
// account with its opening balance and adding debit minus credit per line.
func RunningBalances(openings map[string]decimal.Decimal, lines []domain.LedgerLine) []domain.GLRow {
	out := make([]domain.GLRow, 0, len(lines))
	current := ""
	running := decimal.Zero
	for i, line := range lines {
		if i == 0 || line.AccountRef != current {
			current = line.AccountRef
			running = openings[current] // zero value when absent
		}
		signed := line.DebitAmount.Sub(line.CreditAmount)
		running = running.Add(signed)
		out = append(out, domain.GLRow{LedgerLine: line, SignedAmount: signed, RunningBalance: running})
	}
	return out
}

// SortLedgerLines orders lines by account code, transaction date, transaction id and entry id.
func SortLedgerLines(lines []domain.LedgerLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.Before(b.TransactionDate)
		}
		if a.TransactionID != b.TransactionID {
			return a.TransactionID < b.TransactionID
		}
		return a.EntryID < b.EntryID
	})
}

// IncomeActuals buckets account totals by P&L mapping. Revenue-like buckets are credit minus debit,
// cost buckets are debit minus credit. Accounts mapped to NONE are ignored.
func IncomeActuals(rows []domain.AccountTotals) domain.IncomeFigures {
	f := domain.IncomeFigures{
		Revenue:      decimal.Zero,
		COGS:         decimal.Zero,
		Opex:         decimal.Zero,
		OtherIncome:  decimal.Zero,
		OtherExpense: decimal.Zero,
	}
	for _, r := range rows {
		creditNet := r.Credits.Sub(r.Debits)
		debitNet := r.Debits.Sub(r.Credits)
		switch r.PLMapping {
		case domain.PLRevenue:
			f.Revenue = f.Revenue.Add(creditNet)
		case domain.PLCOGS:
			f.COGS = f.COGS.Add(debitNet)
		case domain.PLOpex:
			f.Opex = f.Opex.Add(debitNet)
		case domain.PLOtherIncome:
			f.OtherIncome = f.OtherIncome.Add(creditNet)
		case domain.PLOtherExpense:
			f.OtherExpense = f.OtherExpense.Add(debitNet)
		}
	}
	return Derive(f)
}

// BudgetFigures lifts period budgets into an income statement column.
func BudgetFigures(b domain.Budgets) domain.IncomeFigures {
	return Derive(domain.IncomeFigures{
		Revenue:      b.Revenue,
		COGS:         b.COGS,
		Opex:         b.Opex,
		OtherIncome:  b.OtherIncome,
		OtherExpense: b.OtherExpense,
	})
}

// Derive fills gross profit, EBIT and net income from the five base buckets.
func Derive(f domain.IncomeFigures) domain.IncomeFigures {
	f.GrossProfit = f.Revenue.Sub(f.COGS)
	f.EBIT = f.GrossProfit.Sub(f.Opex)
	f.NetIncome = f.EBIT.Add(f.OtherIncome).Sub(f.OtherExpense)
	return f
}

var hundred = decimal.NewFromInt(100)

// VariancePct returns variance / budget * 100 with the quotient rounded half-up to 6 places,
// or nil when the budget is zero.
func VariancePct(variance, budget decimal.Decimal) *decimal.Decimal {
	if budget.IsZero() {
		return nil
	}
	pct := variance.DivRound(budget, 6).Mul(hundred)
	return &pct
}

// BuildIncomeStatement compares actuals to budgets.
func BuildIncomeStatement(period domain.Period, rows []domain.AccountTotals) domain.IncomeStatement {
	actual := IncomeActuals(rows)
	budget := BudgetFigures(period.Budgets)
	variance := domain.IncomeVariance{
		Revenue:     actual.Revenue.Sub(budget.Revenue),
		COGS:        actual.COGS.Sub(budget.COGS),
		GrossProfit: actual.GrossProfit.Sub(budget.GrossProfit),
		EBIT:        actual.EBIT.Sub(budget.EBIT),
		NetIncome:   actual.NetIncome.Sub(budget.NetIncome),
	}
	return domain.IncomeStatement{
		PeriodID:    period.ID,
		PeriodLabel: period.Label,
		StartDate:   period.StartDate,
		EndDate:     period.EndDate,
		Actual:      actual,
		Budget:      budget,
		Variance:    variance,
		VariancePct: domain.IncomeVariancePct{
			Revenue:     VariancePct(variance.Revenue, budget.Revenue),
			GrossProfit: VariancePct(variance.GrossProfit, budget.GrossProfit),
			EBIT:        VariancePct(variance.EBIT, budget.EBIT),
			NetIncome:   VariancePct(variance.NetIncome, budget.NetIncome),
		},
	}
}

// BuildBalanceSheet buckets asset, liability and equity accounts and checks
// assets == liabilities + equity exactly. Revenue and expense accounts are left out.
func BuildBalanceSheet(rows []domain.AccountTotals) domain.BalanceSheetReport {
	sorted := append([]domain.AccountTotals(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.AccountType != b.AccountType {
			return a.AccountType < b.AccountType
		}
		if a.IsCurrent != b.IsCurrent {
			return a.IsCurrent
		}
		return a.AccountID < b.AccountID
	})

	report := domain.BalanceSheetReport{
		AssetsCurrent:         []domain.BalanceSheetRow{},
		AssetsNonCurrent:      []domain.BalanceSheetRow{},
		LiabilitiesCurrent:    []domain.BalanceSheetRow{},
		LiabilitiesNonCurrent: []domain.BalanceSheetRow{},
		Equity:                []domain.BalanceSheetRow{},
		TotalAssets:           decimal.Zero,
		TotalLiabilities:      decimal.Zero,
		TotalEquity:           decimal.Zero,
	}

	for _, r := range sorted {
		row := domain.BalanceSheetRow{
			AccountRef:    r.AccountRef,
			AccountID:     r.AccountID,
			AccountName:   r.AccountName,
			AccountType:   r.AccountType,
			IsCurrent:     r.IsCurrent,
			TotalDebits:   r.Debits,
			TotalCredits:  r.Credits,
			SignedBalance: SignedBalance(r.AccountType, r.Debits, r.Credits),
		}
		switch r.AccountType {
		case domain.Asset:
			if r.IsCurrent {
				report.AssetsCurrent = append(report.AssetsCurrent, row)
			} else {
				report.AssetsNonCurrent = append(report.AssetsNonCurrent, row)
			}
			report.TotalAssets = report.TotalAssets.Add(row.SignedBalance)
		case domain.Liability:
			if r.IsCurrent {
				report.LiabilitiesCurrent = append(report.LiabilitiesCurrent, row)
			} else {
				report.LiabilitiesNonCurrent = append(report.LiabilitiesNonCurrent, row)
			}
			report.TotalLiabilities = report.TotalLiabilities.Add(row.SignedBalance)
		case domain.Equity:
			report.Equity = append(report.Equity, row)
			report.TotalEquity = report.TotalEquity.Add(row.SignedBalance)
		}
	}

	report.ValidationStatus = domain.ReportUnbalanced
	if report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)) {
		report.ValidationStatus = domain.ReportBalanced
	}
	return report
}

// AttributeCashMovements pairs every cash line with every other line of the same transaction
// and adds the cash line's movement (+debit or -credit) to the other line's cash source.
// A transaction with several non-cash lines attributes the same cash movement once per line.
func AttributeCashMovements(lines []domain.CashLine) map[domain.CashSource]decimal.Decimal {
	byTxn := make(map[string][]domain.CashLine)
	order := make([]string, 0)
	for _, l := range lines {
		if _, ok := byTxn[l.TransactionID]; !ok {
			order = append(order, l.TransactionID)
		}
		byTxn[l.TransactionID] = append(byTxn[l.TransactionID], l)
	}

	sections := map[domain.CashSource]decimal.Decimal{}
	for _, txnID := range order {
		txnLines := byTxn[txnID]
		for _, cash := range txnLines {
			if !cash.IsCashAccount {
				continue
			}
			movement := cashMovement(cash)
			for _, other := range txnLines {
				if other.EntryID == cash.EntryID {
					continue
				}
				source := other.CashSource
				if source == "" {
					source = domain.CashSourceNone
				}
				sections[source] = sectionValue(sections, source).Add(movement)
			}
		}
	}
	return sections
}

func cashMovement(l domain.CashLine) decimal.Decimal {
	switch {
	case l.DebitAmount.IsPositive():
		return l.DebitAmount
	case l.CreditAmount.IsPositive():
		return l.CreditAmount.Neg()
	default:
		return decimal.Zero
	}
}

func sectionValue(sections map[domain.CashSource]decimal.Decimal, s domain.CashSource) decimal.Decimal {
	if v, ok := sections[s]; ok {
		return v
	}
	return decimal.Zero
}

// BuildCashFlow assembles the cash flow statement and its reconciliation against the
// independently computed balance sheet cash.
func BuildCashFlow(period domain.Period, openingCash, balanceSheetCash decimal.Decimal, lines []domain.CashLine) domain.CashFlowReport {
	sections := AttributeCashMovements(lines)
	cfo := sectionValue(sections, domain.CashSourceCFO)
	cfi := sectionValue(sections, domain.CashSourceCFI)
	cff := sectionValue(sections, domain.CashSourceCFF)
	netChange := cfo.Add(cfi).Add(cff)
	endingCash := openingCash.Add(netChange)

	return domain.CashFlowReport{
		PeriodID:         period.ID,
		PeriodLabel:      period.Label,
		OpeningCash:      openingCash,
		CFO:              cfo,
		CFI:              cfi,
		CFF:              cff,
		Unclassified:     sectionValue(sections, domain.CashSourceNone),
		NetChange:        netChange,
		EndingCash:       endingCash,
		BalanceSheetCash: balanceSheetCash,
		Reconciled:       endingCash.Equal(balanceSheetCash),
		SectionDetails:   sections,
	}
}
