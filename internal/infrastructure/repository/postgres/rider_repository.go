package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	qb "github.com/vdsgame/vds-api/internal/platform/querybuilder"
)

type RiderRepository struct {
	db *sqlx.DB
}

func NewRiderRepository(db *sqlx.DB) *RiderRepository {
	return &RiderRepository{db: db}
}

var riderSelectColumns = []string{
	"r.rider_name",
	"r.year",
	"r.sex",
	"r.price",
	"r.pro_team_name",
	"COALESCE(pt.acronym, '') AS pro_team_acronym",
	"r.nationality",
}

func (r *RiderRepository) ListBySeason(ctx context.Context, year int, division game.Division, filter rider.Filter) ([]rider.Rider, error) {
	conditions := []qb.Condition{
		qb.Eq("r.year", year),
		qb.Eq("r.sex", string(division)),
	}
	if filter.Nationality != "" {
		conditions = append(conditions, qb.Eq("r.nationality", filter.Nationality))
	}
	if filter.ProTeamName != "" {
		conditions = append(conditions, qb.Eq("r.pro_team_name", filter.ProTeamName))
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, qb.Expr("r.price >= ?", filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, qb.Expr("r.price <= ?", filter.MaxPrice))
	}

	query, args, err := qb.Select(riderSelectColumns...).
		From("rider r LEFT JOIN pro_team pt ON pt.name = r.pro_team_name AND pt.year = r.year").
		Where(conditions...).
		OrderBy("r.price DESC", "r.rider_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select riders query: %w", err)
	}

	var rows []riderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select riders: %w", err)
	}

	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RiderRepository) PricesByName(ctx context.Context, year int, division game.Division) (map[string]int, error) {
	const query = `
SELECT rider_name, price
FROM rider
WHERE year = $1
  AND sex = $2`

	var rows []struct {
		RiderName string `db:"rider_name"`
		Price     int    `db:"price"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, year, string(division)); err != nil {
		return nil, fmt.Errorf("select rider prices: %w", err)
	}

	prices := make(map[string]int, len(rows))
	for _, row := range rows {
		prices[row.RiderName] = row.Price
	}

	return prices, nil
}
