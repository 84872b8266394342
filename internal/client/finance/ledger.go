// Package finance is a local, in-memory personal budget ledger. Nothing in it
// talks to the backend or is persisted.
package finance

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/lifedash/internal/client/insights"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than 0")
	ErrInvalidKind   = errors.New("unknown expense kind")
	ErrNameRequired  = errors.New("name is required")
)

// positive reports whether v is a finite amount above zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// IncomeTypes offered by the income form.
var IncomeTypes = []string{"Salary", "Freelance", "Business", "Other"}

type ExpenseKind string

const (
	ExpenseFixed    ExpenseKind = "fixed"
	ExpenseVariable ExpenseKind = "variable"
)

type Income struct {
	Type   string
	Amount float64
}

type SavingsGoal struct {
	Name     string
	Target   float64
	Saved    float64
	Deadline string
}

// Percent is saved/target rounded to a whole percentage.
func (g SavingsGoal) Percent() int {
	if g.Target <= 0 {
		return 0
	}
	return int(math.Round(g.Saved / g.Target * 100))
}

// Ledger tracks income by type, fixed and variable expenses, and savings
// goals. It is safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	income   []Income
	expenses map[ExpenseKind]float64
	goals    []SavingsGoal
}

func NewLedger() *Ledger {
	return &Ledger{expenses: map[ExpenseKind]float64{ExpenseFixed: 0, ExpenseVariable: 0}}
}

// AddIncome adds amount to the line of the same type, or starts a new line.
func (l *Ledger) AddIncome(kind string, amount float64) error {
	if !positive(amount) {
		return fmt.Errorf("income %s: %w", kind, ErrInvalidAmount)
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("income type: %w", ErrNameRequired)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i := slices.IndexFunc(l.income, func(in Income) bool { return in.Type == kind }); i >= 0 {
		l.income[i].Amount += amount
		return nil
	}
	l.income = append(l.income, Income{Type: kind, Amount: amount})
	return nil
}

func (l *Ledger) AddExpense(kind ExpenseKind, amount float64) error {
	if kind != ExpenseFixed && kind != ExpenseVariable {
		return fmt.Errorf("%q: %w", kind, ErrInvalidKind)
	}
	if !positive(amount) {
		return fmt.Errorf("expense %s: %w", kind, ErrInvalidAmount)
	}

	l.mu.Lock()
	l.expenses[kind] += amount
	l.mu.Unlock()
	return nil
}

// AddGoal appends a savings goal. Saved may be zero.
func (l *Ledger) AddGoal(g SavingsGoal) error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("savings goal: %w", ErrNameRequired)
	}
	if !positive(g.Target) {
		return fmt.Errorf("savings goal %s: %w", g.Name, ErrInvalidAmount)
	}
	if g.Saved < 0 || math.IsNaN(g.Saved) || math.IsInf(g.Saved, 0) {
		g.Saved = 0
	}

	l.mu.Lock()
	l.goals = append(l.goals, g)
	l.mu.Unlock()
	return nil
}

func (l *Ledger) Income() []Income {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.income)
}

func (l *Ledger) Goals() []SavingsGoal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.goals)
}

func (l *Ledger) Expense(kind ExpenseKind) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expenses[kind]
}

func (l *Ledger) TotalIncome() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum float64
	for _, in := range l.income {
		sum += in.Amount
	}
	return sum
}

func (l *Ledger) TotalExpenses() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expenses[ExpenseFixed] + l.expenses[ExpenseVariable]
}

// Balance is total income minus total expenses.
func (l *Ledger) Balance() float64 {
	return l.TotalIncome() - l.TotalExpenses()
}

// Budget is the 50/30/20 split of total income.
func (l *Ledger) Budget() insights.Budget {
	return insights.Allocate(l.TotalIncome())
}
