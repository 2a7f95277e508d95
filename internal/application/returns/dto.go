package returns

import (
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnSelection is one requested return line: which product and how many units.
type ReturnSelection struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// ReturnableLineResponse describes one line a caller may still return.
type ReturnableLineResponse struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Quantity          int             `json:"quantity"`
	ReturnedQuantity  int             `json:"returned_quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
	PricePerItem      decimal.Decimal `json:"price_per_item"`
}

// SettleReturnResult reports a committed settlement.
type SettleReturnResult struct {
	ReturnID    uuid.UUID       `json:"return_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func toReturnableLineResponses(lines []trade.ReturnableLine) []ReturnableLineResponse {
	out := make([]ReturnableLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, ReturnableLineResponse{
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			Quantity:          line.Quantity,
			ReturnedQuantity:  line.ReturnedQuantity,
			RemainingQuantity: line.RemainingQuantity,
			PricePerItem:      line.PricePerItem,
		})
	}
	return out
}
