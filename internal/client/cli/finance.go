package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/finance"
	"github.com/dmitrijs2005/lifedash/internal/client/insights"
)

var errFinanceUsage = errors.New(`usage:
  finance                                   show the ledger
  finance income <type> <amount>            types: ` + strings.Join(finance.IncomeTypes, ", ") + `
  finance expense <fixed|variable> <amount>
  finance goal <name> <target> [saved] [deadline]`)

// Budget prints the 50/30/20 split of an ad-hoc income.
func (a *App) Budget(_ context.Context, income float64) error {
	renderBudget(a.out, insights.Allocate(income))
	return nil
}

// Finance edits or shows the in-memory ledger.
func (a *App) Finance(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.showLedger()
		return nil
	}

	switch args[0] {
	case "income":
		if len(args) < 3 {
			return errFinanceUsage
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		if err := a.ledger.AddIncome(args[1], amount); err != nil {
			return err
		}
	case "expense":
		if len(args) < 3 {
			return errFinanceUsage
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		if err := a.ledger.AddExpense(finance.ExpenseKind(strings.ToLower(args[1])), amount); err != nil {
			return err
		}
	case "goal":
		if len(args) < 3 {
			return errFinanceUsage
		}
		g := finance.SavingsGoal{Name: args[1]}
		var err error
		if g.Target, err = parseAmount(args[2]); err != nil {
			return err
		}
		if len(args) > 3 {
			if g.Saved, err = parseAmount(args[3]); err != nil {
				return err
			}
		}
		if len(args) > 4 {
			g.Deadline = args[4]
		}
		if err := a.ledger.AddGoal(g); err != nil {
			return err
		}
	default:
		return errFinanceUsage
	}
	a.showLedger()
	return nil
}

func parseAmount(s string) (float64, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, finance.ErrInvalidAmount)
	}
	return v, nil
}

func (a *App) showLedger() {
	tw := newTable(a.out)
	for _, in := range a.ledger.Income() {
		fmt.Fprintf(tw, "Income: %s\t%.2f\n", in.Type, in.Amount)
	}
	fmt.Fprintf(tw, "Total income\t%.2f\n", a.ledger.TotalIncome())
	fmt.Fprintf(tw, "Fixed expenses\t%.2f\n", a.ledger.Expense(finance.ExpenseFixed))
	fmt.Fprintf(tw, "Variable expenses\t%.2f\n", a.ledger.Expense(finance.ExpenseVariable))
	fmt.Fprintf(tw, "Balance\t%.2f\n", a.ledger.Balance())
	tw.Flush()

	fmt.Fprintln(a.out, "Budget:")
	renderBudget(a.out, a.ledger.Budget())

	goals := a.ledger.Goals()
	if len(goals) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Savings goals:")
	tw = newTable(a.out)
	for _, g := range goals {
		fmt.Fprintf(tw, "  %s\t%.2f / %.2f\t%d%%\t%s\n", g.Name, g.Saved, g.Target, g.Percent(), g.Deadline)
	}
	tw.Flush()
}
