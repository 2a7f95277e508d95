package returns

import (
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// validatedSelection pairs a requested quantity with the line it
// resolved against.
type validatedSelection struct {
	Line     trade.ReturnableLine
	Quantity int
}

// validateSelections checks each selection against the freshly loaded
// aggregate lines. Selections with a non-positive quantity are dropped
// silently; a selection for a product outside the original transaction,
// or asking for more than remains returnable (cumulatively, when the
// same product appears more than once), fails the whole batch. An
// all-dropped or empty batch is rejected.
func validateSelections(lines []trade.ReturnableLine, selections []ReturnSelection) ([]validatedSelection, error) {
	byProduct := make(map[uuid.UUID]trade.ReturnableLine, len(lines))
	for _, line := range lines {
		byProduct[line.ProductID] = line
	}

	requested := make(map[uuid.UUID]int)
	out := make([]validatedSelection, 0, len(selections))

	for _, sel := range selections {
		if sel.Quantity <= 0 {
			continue
		}
		line, ok := byProduct[sel.ProductID]
		if !ok {
			return nil, trade.NewItemNotFoundError(sel.ProductID)
		}
		requested[sel.ProductID] += sel.Quantity
		if requested[sel.ProductID] > line.RemainingQuantity {
			return nil, trade.NewExceedsReturnableError(line.ProductName, requested[sel.ProductID], line.RemainingQuantity)
		}
		out = append(out, validatedSelection{Line: line, Quantity: sel.Quantity})
	}

	if len(out) == 0 {
		return nil, trade.NewEmptySelectionError()
	}
	return out, nil
}
