package cart

import (
	"sort"

	"shopchat/internal/model"
)

// ComputeDeltas returns the signed quantity difference between the desired
// final state and the cart's current lines, over the union of product ids
// referenced by either side. Products present in the cart but absent from
// desired get a delta of -currentQty (full removal).
func ComputeDeltas(current []model.CartLine, desired []LineRequest) []StockDelta {
	currentQty := make(map[int64]int, len(current))
	for _, l := range current {
		currentQty[l.ProductID] = l.Quantity
	}

	desiredQty := make(map[int64]int, len(desired))
	for _, l := range desired {
		// Last writer wins on duplicate ids; negatives normalize to removal.
		qty := l.Quantity
		if qty < 0 {
			qty = 0
		}
		desiredQty[l.ProductID] = qty
	}

	union := make(map[int64]struct{}, len(currentQty)+len(desiredQty))
	for id := range currentQty {
		union[id] = struct{}{}
	}
	for id := range desiredQty {
		union[id] = struct{}{}
	}

	deltas := make([]StockDelta, 0, len(union))
	for id := range union {
		d := desiredQty[id] - currentQty[id]
		if d != 0 {
			deltas = append(deltas, StockDelta{ProductID: id, Delta: d})
		}
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].ProductID < deltas[j].ProductID })
	return deltas
}

// AdjustToAvailable replaces each shortfalled line's quantity with its
// reported available stock, leaving other lines untouched. Pure function:
// callers invoke it only after explicit user confirmation.
func AdjustToAvailable(lines []LineRequest, shortfalls []StockShortfall) []LineRequest {
	available := make(map[int64]int, len(shortfalls))
	for _, sf := range shortfalls {
		available[sf.ProductID] = sf.AvailableStock
	}

	adjusted := make([]LineRequest, len(lines))
	for i, l := range lines {
		if qty, ok := available[l.ProductID]; ok {
			l.Quantity = qty
		}
		adjusted[i] = l
	}
	return adjusted
}
