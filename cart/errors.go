package cart

import "fmt"

// NotFoundError reports a target entity that does not exist, is inactive, or
// does not belong to the calling identity. Safe to surface verbatim.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError reports a structural precondition failure, e.g. a bundle
// component that is itself not available for purchase.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientStockError rejects a quantity that would exceed available
// stock. Available carries the remaining purchasable capacity so the
// storefront can tell the shopper exactly how many are left; for bundle
// components it counts whole bundle units, not raw stock.
type InsufficientStockError struct {
	Item      string
	Available int
	// Additional is true when Available counts units on top of what the
	// cart already holds, false when it is the total purchasable quantity.
	Additional bool
}

func (e *InsufficientStockError) Error() string {
	if e.Available <= 0 {
		return fmt.Sprintf("no more %s available", e.Item)
	}
	if e.Additional {
		return fmt.Sprintf("only %d more %s available", e.Available, e.Item)
	}
	return fmt.Sprintf("only %d %s available", e.Available, e.Item)
}
