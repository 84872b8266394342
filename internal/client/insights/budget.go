package insights

// 50/30/20 split of income.
const (
	NeedsShare   = 0.5
	WantsShare   = 0.3
	SavingsShare = 0.2
)

type Budget struct {
	Needs   float64
	Wants   float64
	Savings float64
}

func Allocate(income float64) Budget {
	return Budget{
		Needs:   income * NeedsShare,
		Wants:   income * WantsShare,
		Savings: income * SavingsShare,
	}
}
