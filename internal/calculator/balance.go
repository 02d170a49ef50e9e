package calculator

import (
	"github.com/shopspring/decimal"

	"LoanSentinel/internal/model"
)

// LowWaterMark walks the transactions backwards in time from the current
// balance and returns the lowest balance reached along with the index of the
// transaction that produced it. The index is -1 when the current balance is
// itself the lowest point.
//
// txns must be ordered most-recent-first. A positive amount left the account,
// so undoing it adds it back; a negative amount entered the account, so
// undoing it takes it away.
func LowWaterMark(current decimal.Decimal, txns []model.Transaction) (decimal.Decimal, int) {
	lowest := current
	calculated := current
	index := -1
	for i, txn := range txns {
		calculated = calculated.Add(txn.Amount)
		if calculated.LessThan(lowest) {
			lowest = calculated
			index = i
		}
	}
	return lowest, index
}

// ReconstructLowestBalance returns the lowest balance the account held within
// the window covered by txns (most-recent-first). The result never exceeds
// current and may be negative.
func ReconstructLowestBalance(current decimal.Decimal, txns []model.Transaction) decimal.Decimal {
	lowest, _ := LowWaterMark(current, txns)
	return lowest
}
