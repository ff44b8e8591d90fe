package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const periodColumns = `id, label, start_date, end_date, status,
	revenue_budget, cogs_budget, opex_budget, other_income_budget, other_expense_budget,
	closed_at, time_to_close, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (domain.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.ID,
		&m.Label,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.RevenueBudget,
		&m.COGSBudget,
		&m.OpexBudget,
		&m.OtherIncomeBudget,
		&m.OtherExpenseBudget,
		&m.ClosedAt,
		&m.TimeToClose,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Period{}, err
	}
	return mapping.ToDomainPeriod(m), nil
}

func (r *PgxPeriodRepository) queryPeriods(ctx context.Context, query string, args ...any) ([]domain.Period, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.Period{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return periods, nil
}

// SavePeriod inserts a new period. The periods_no_overlap exclusion constraint backs the
// service-level overlap check against concurrent creates.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.Label,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.RevenueBudget,
		m.COGSBudget,
		m.OpexBudget,
		m.OtherIncomeBudget,
		m.OtherExpenseBudget,
		m.ClosedAt,
		m.TimeToClose,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "period "+m.Label)
	}
	return nil
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, id string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE id = $1;`
	p, err := scanPeriod(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err, "period "+id)
	}
	return &p, nil
}

func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE start_date <= $1 AND end_date >= $1 LIMIT 1;`
	day := domain.DateOnly(date)
	p, err := scanPeriod(r.Pool.QueryRow(ctx, query, day))
	if err != nil {
		return nil, mapPgError(err, "period for "+day.Format(time.DateOnly))
	}
	return &p, nil
}

func (r *PgxPeriodRepository) FindOverlappingPeriods(ctx context.Context, start, end time.Time) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE start_date <= $2 AND end_date >= $1 ORDER BY start_date;`
	return r.queryPeriods(ctx, query, domain.DateOnly(start), domain.DateOnly(end))
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	return r.queryPeriods(ctx, `SELECT `+periodColumns+` FROM periods ORDER BY start_date;`)
}

func (r *PgxPeriodRepository) ListRecentPeriods(ctx context.Context, limit int) ([]domain.Period, error) {
	return r.queryPeriods(ctx, `SELECT `+periodColumns+` FROM periods ORDER BY end_date DESC LIMIT $1;`, limit)
}

// TransitionPeriod locks the period row FOR UPDATE, which waits for in-flight postings holding
// FOR SHARE and blocks new ones until commit. Totals are summed inside the same transaction.
func (r *PgxPeriodRepository) TransitionPeriod(ctx context.Context, id string, apply portsrepo.PeriodTransitionFunc) (*domain.Period, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	period, err := scanPeriod(tx.QueryRow(ctx, `SELECT `+periodColumns+` FROM periods WHERE id = $1 FOR UPDATE;`, id))
	if err != nil {
		return nil, mapPgError(err, "period "+id)
	}

	totals := domain.Totals{Debits: decimal.Zero, Credits: decimal.Zero}
	sumQuery := `
		SELECT COALESCE(SUM(e.debit_amount), 0), COALESCE(SUM(e.credit_amount), 0)
		FROM journal_entries e
		JOIN journal_transactions t ON t.id = e.transaction_id
		WHERE t.period_id = $1;
	`
	if err := tx.QueryRow(ctx, sumQuery, id).Scan(&totals.Debits, &totals.Credits); err != nil {
		return nil, fmt.Errorf("failed to sum period entries: %w", err)
	}

	if err := apply(&period, totals); err != nil {
		return nil, err
	}

	m := mapping.ToModelPeriod(period)
	update := `
		UPDATE periods
		SET status = $2, closed_at = $3, time_to_close = $4, last_updated_at = $5, last_updated_by = $6
		WHERE id = $1;
	`
	if _, err := tx.Exec(ctx, update, m.ID, m.Status, m.ClosedAt, m.TimeToClose, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return nil, fmt.Errorf("failed to update period status: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &period, nil
}
