package sales

import "github.com/erp/ledger/internal/domain/shared/valueobject"

// CalculateOrderTotal sums the line totals. An order with no lines totals zero.
func CalculateOrderTotal(lines []OrderLine) valueobject.Money {
	total := valueobject.Zero()
	for i := range lines {
		total = total.Add(lines[i].Total())
	}
	return total
}

// NextLineNo returns the line number a new line gets when none is given
func NextLineNo(lines []OrderLine) int {
	maxNo := 0
	for _, l := range lines {
		if l.LineNo > maxNo {
			maxNo = l.LineNo
		}
	}
	return maxNo + 1
}
