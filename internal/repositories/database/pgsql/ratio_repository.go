package pgsql

import (
	"context"
	"fmt"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/models"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ratioColumns = `id, ratio_name, benchmark_value, warning_threshold, created_at, created_by, last_updated_at, last_updated_by`

type PgxRatioRepository struct {
	BaseRepository
}

func newPgxRatioRepository(pool *pgxpool.Pool) portsrepo.RatioRepositoryFacade {
	return &PgxRatioRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RatioRepositoryFacade = (*PgxRatioRepository)(nil)

func scanRatio(row pgx.Row) (domain.Ratio, error) {
	var m models.Ratio
	if err := row.Scan(&m.ID, &m.RatioName, &m.BenchmarkValue, &m.WarningThreshold,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
		return domain.Ratio{}, err
	}
	return mapping.ToDomainRatio(m), nil
}

func (r *PgxRatioRepository) SaveRatio(ctx context.Context, ratio domain.Ratio) error {
	m := mapping.ToModelRatio(ratio)
	query := `INSERT INTO financial_ratios (` + ratioColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query, m.ID, m.RatioName, m.BenchmarkValue, m.WarningThreshold,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "ratio "+m.RatioName)
	}
	return nil
}

func (r *PgxRatioRepository) UpdateRatio(ctx context.Context, ratio domain.Ratio) error {
	m := mapping.ToModelRatio(ratio)
	query := `
		UPDATE financial_ratios
		SET ratio_name = $2, benchmark_value = $3, warning_threshold = $4, last_updated_at = $5, last_updated_by = $6
		WHERE id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.ID, m.RatioName, m.BenchmarkValue, m.WarningThreshold, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "ratio "+m.RatioName)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ratio", m.ID)
	}
	return nil
}

func (r *PgxRatioRepository) FindRatioByID(ctx context.Context, id string) (*domain.Ratio, error) {
	ratio, err := scanRatio(r.Pool.QueryRow(ctx, `SELECT `+ratioColumns+` FROM financial_ratios WHERE id = $1;`, id))
	if err != nil {
		return nil, mapPgError(err, "ratio "+id)
	}
	return &ratio, nil
}

func (r *PgxRatioRepository) ListRatios(ctx context.Context) ([]domain.Ratio, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+ratioColumns+` FROM financial_ratios ORDER BY ratio_name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratios: %w", err)
	}
	defer rows.Close()

	ratios := []domain.Ratio{}
	for rows.Next() {
		ratio, err := scanRatio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ratio row: %w", err)
		}
		ratios = append(ratios, ratio)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratio rows: %w", err)
	}
	return ratios, nil
}
