package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/utils"
	"github.com/klokku/clarity/pkg/period"
	log "github.com/sirupsen/logrus"
)

const expenseColumns = `id, category_id, amount, spent_on, note, created_at`

type PgRepository struct {
	db    *pgxpool.Pool
	clock utils.Clock
}

func NewPgRepository(db *pgxpool.Pool, clock utils.Clock) *PgRepository {
	return &PgRepository{db: db, clock: clock}
}

func (r *PgRepository) List(ctx context.Context) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense ORDER BY spent_on DESC, seq`
	return r.query(ctx, query)
}

func (r *PgRepository) ListForMonth(ctx context.Context, month period.MonthKey) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense
			  WHERE spent_on >= $1 AND spent_on < $2
			  ORDER BY spent_on DESC, seq`
	return r.query(ctx, query, month.Start(), month.End())
}

func (r *PgRepository) Get(ctx context.Context, id int) (Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE id = $1`
	e, err := scanExpense(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Expense{}, r.translate("could not get expense", id, err)
	}
	return e, nil
}

func (r *PgRepository) Create(ctx context.Context, data NewExpense) (Expense, error) {
	// Id follows the same rule as the memory store: highest existing id + 1.
	query := `INSERT INTO expense (id, category_id, amount, spent_on, note, created_at)
			  SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM expense
			  RETURNING ` + expenseColumns
	e, err := scanExpense(r.db.QueryRow(ctx, query,
		data.CategoryId,
		data.Amount,
		data.Date,
		data.Note,
		r.clock.Now(),
	))
	if err != nil {
		err := apperr.Unavailable("could not insert expense", err)
		log.Error(err)
		return Expense{}, err
	}
	return e, nil
}

func (r *PgRepository) Update(ctx context.Context, id int, patch Patch) (Expense, error) {
	query := `UPDATE expense SET
				category_id = COALESCE($2, category_id),
				amount = COALESCE($3, amount),
				spent_on = COALESCE($4, spent_on),
				note = COALESCE($5, note)
			  WHERE id = $1
			  RETURNING ` + expenseColumns
	e, err := scanExpense(r.db.QueryRow(ctx, query, id, patch.CategoryId, patch.Amount, patch.Date, patch.Note))
	if err != nil {
		return Expense{}, r.translate("could not update expense", id, err)
	}
	return e, nil
}

func (r *PgRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expense WHERE id = $1`, id)
	if err != nil {
		err := apperr.Unavailable("could not delete expense", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", ErrExpenseNotFound, id)
	}
	return nil
}

func (r *PgRepository) query(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := apperr.Unavailable("could not query expenses", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			err := apperr.Unavailable("error scanning expense row", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("error iterating expenses", err)
	}
	return expenses, nil
}

func (r *PgRepository) translate(op string, id int, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %d", ErrExpenseNotFound, id)
	}
	err = apperr.Unavailable(op, err)
	log.Error(err)
	return err
}

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	err := row.Scan(&e.Id, &e.CategoryId, &e.Amount, &e.Date, &e.Note, &e.CreatedAt)
	if err != nil {
		return Expense{}, err
	}
	e.Date = period.Day(e.Date)
	return e, nil
}
