// Package fixtures loads the seed ledger used by the in-memory store.
package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/klokku/clarity/pkg/category"
	"github.com/klokku/clarity/pkg/expense"
	"github.com/klokku/clarity/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	CategoriesFile = "categories.json"
	ExpensesFile   = "expenses.json"
)

//go:embed data/*.json
var embedded embed.FS

type categoryRecord struct {
	Id           int             `json:"Id"`
	Name         string          `json:"name"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

type expenseRecord struct {
	Id         int             `json:"Id"`
	CategoryId int             `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Ledger struct {
	Categories []category.Category
	Expenses   []expense.Expense
}

// Load reads categories.json and expenses.json from dir, or the bundled data when dir is empty.
func Load(dir string) (Ledger, error) {
	if dir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return Ledger{}, err
		}
		return LoadFS(sub)
	}
	log.Infof("Loading fixtures from %s", dir)
	return LoadFS(os.DirFS(dir))
}

func LoadFS(fsys fs.FS) (Ledger, error) {
	var categories []categoryRecord
	if err := readJSON(fsys, CategoriesFile, &categories); err != nil {
		return Ledger{}, err
	}
	var expenses []expenseRecord
	if err := readJSON(fsys, ExpensesFile, &expenses); err != nil {
		return Ledger{}, err
	}

	ledger := Ledger{
		Categories: make([]category.Category, 0, len(categories)),
		Expenses:   make([]expense.Expense, 0, len(expenses)),
	}
	var problems []error
	seenCategories := map[int]bool{}
	for i, c := range categories {
		switch {
		case c.Id <= 0:
			problems = append(problems, fmt.Errorf("%s[%d]: Id must be positive", CategoriesFile, i))
		case seenCategories[c.Id]:
			problems = append(problems, fmt.Errorf("%s[%d]: duplicate Id %d", CategoriesFile, i, c.Id))
		case c.MonthlyLimit.IsNegative():
			problems = append(problems, fmt.Errorf("%s[%d]: monthlyLimit must not be negative", CategoriesFile, i))
		}
		seenCategories[c.Id] = true
		ledger.Categories = append(ledger.Categories, category.Category{
			Id:           c.Id,
			Name:         c.Name,
			Color:        c.Color,
			Icon:         c.Icon,
			MonthlyLimit: c.MonthlyLimit,
		})
	}

	seenExpenses := map[int]bool{}
	for i, e := range expenses {
		date, err := period.ParseDay(e.Date)
		switch {
		case e.Id <= 0:
			problems = append(problems, fmt.Errorf("%s[%d]: Id must be positive", ExpensesFile, i))
		case seenExpenses[e.Id]:
			problems = append(problems, fmt.Errorf("%s[%d]: duplicate Id %d", ExpensesFile, i, e.Id))
		case !e.Amount.IsPositive():
			problems = append(problems, fmt.Errorf("%s[%d]: amount must be positive", ExpensesFile, i))
		case err != nil:
			problems = append(problems, fmt.Errorf("%s[%d]: %w", ExpensesFile, i, err))
		}
		seenExpenses[e.Id] = true
		ledger.Expenses = append(ledger.Expenses, expense.Expense{
			Id:         e.Id,
			CategoryId: e.CategoryId,
			Amount:     e.Amount,
			Date:       date,
			Note:       e.Note,
			CreatedAt:  e.CreatedAt.UTC(),
		})
	}
	if len(problems) > 0 {
		return Ledger{}, fmt.Errorf("invalid fixtures: %w", errors.Join(problems...))
	}

	log.Debugf("Loaded %d categories and %d expenses", len(ledger.Categories), len(ledger.Expenses))
	return ledger, nil
}

func readJSON(fsys fs.FS, name string, target any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
