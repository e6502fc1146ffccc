package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/clarity/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type PgRepository struct {
	db *pgxpool.Pool
}

func NewPgRepository(db *pgxpool.Pool) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) List(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, color, icon, monthly_limit FROM category ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := apperr.Unavailable("could not query categories", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Id, &c.Name, &c.Color, &c.Icon, &c.MonthlyLimit); err != nil {
			err := apperr.Unavailable("error scanning category row", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("error iterating categories", err)
	}
	return categories, nil
}

func (r *PgRepository) Get(ctx context.Context, id int) (Category, error) {
	query := `SELECT id, name, color, icon, monthly_limit FROM category WHERE id = $1`
	var c Category
	err := r.db.QueryRow(ctx, query, id).Scan(&c.Id, &c.Name, &c.Color, &c.Icon, &c.MonthlyLimit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, fmt.Errorf("%w: %d", ErrCategoryNotFound, id)
		}
		err := apperr.Unavailable("could not get category", err)
		log.Error(err)
		return Category{}, err
	}
	return c, nil
}

func (r *PgRepository) Update(ctx context.Context, id int, patch Patch) (Category, error) {
	query := `UPDATE category SET
				name = COALESCE($2, name),
				color = COALESCE($3, color),
				icon = COALESCE($4, icon),
				monthly_limit = COALESCE($5, monthly_limit)
			  WHERE id = $1
			  RETURNING id, name, color, icon, monthly_limit`

	var c Category
	err := r.db.QueryRow(ctx, query, id, patch.Name, patch.Color, patch.Icon, patch.MonthlyLimit).
		Scan(&c.Id, &c.Name, &c.Color, &c.Icon, &c.MonthlyLimit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, fmt.Errorf("%w: %d", ErrCategoryNotFound, id)
		}
		err := apperr.Unavailable("could not update category", err)
		log.Error(err)
		return Category{}, err
	}
	return c, nil
}
