package cart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyLines   = errors.New("cart request contains no lines")
	ErrCartNotFound = errors.New("cart not found")
)

// ProductNotFoundError lists every referenced product id that does not
// exist. Distinct from a shortfall: the product is unknown, not short.
type ProductNotFoundError struct {
	IDs []int64
}

func (e *ProductNotFoundError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return "products not found: " + strings.Join(ids, ", ")
}
