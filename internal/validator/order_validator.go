package validator

import "errors"

var (
	// 明細が1件も無い
	ErrEmptyOrder = errors.New("order must contain at least one line")

	// 数量が不正
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// 商品IDが不正
	ErrInvalidProductID = errors.New("invalid product id")
)

// 注文明細の入力1件。
type OrderLineRequest struct {
	ProductID int64
	Quantity  int64
}

// ValidateOrderLines は明細入力を検証する純粋関数。
// 永続化の前に呼び、ここで落ちたら一切書き込まない。
func ValidateOrderLines(lines []OrderLineRequest) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	for _, l := range lines {
		if l.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if l.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
