package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
)

type calculationRepository struct {
	db *sql.DB
}

func NewCalculationRepository(db *sql.DB) repository.CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Create(ctx context.Context, c *domain.Calculation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	query := `INSERT INTO calculations (id, system_size_kw, postcode, zone, unit_price, total_units, estimated_value, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.SystemSizeKw, c.Postcode, c.Zone, c.UnitPrice, c.TotalUnits, c.EstimatedValue, c.CreatedAt)
	return err
}

func (r *calculationRepository) ListRecent(ctx context.Context, limit int32) ([]domain.Calculation, error) {
	query := `SELECT id, system_size_kw, postcode, zone, unit_price, total_units, estimated_value, created_at FROM calculations ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []domain.Calculation
	for rows.Next() {
		var c domain.Calculation
		if err := rows.Scan(&c.ID, &c.SystemSizeKw, &c.Postcode, &c.Zone, &c.UnitPrice, &c.TotalUnits, &c.EstimatedValue, &c.CreatedAt); err != nil {
			return nil, err
		}
		calcs = append(calcs, c)
	}
	return calcs, rows.Err()
}
