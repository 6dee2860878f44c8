package model

// 注文ステータスの参照データ。起動時にシードし、以後は読み取り専用。
type OrderStatus struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

// シードする正式名。条件分岐は必ず名前で比較する（数値IDは書かない）。
const (
	StatusNew               = "New Order"
	StatusCancelledByUser   = "Cancelled by user"
	StatusCancelledByAdmin  = "Cancelled by administrator"
	StatusConfirmed         = "Confirmed"
	StatusMovedToDelivery   = "Moved to delivery company"
	StatusInDelivery        = "In delivery"
	StatusDelivered         = "Delivered to client"
	StatusDeliveryConfirmed = "Delivery confirmed by client"
)

// OrderStatusNames はシード順の全ステータス名。
var OrderStatusNames = []string{
	StatusNew,
	StatusCancelledByUser,
	StatusCancelledByAdmin,
	StatusConfirmed,
	StatusMovedToDelivery,
	StatusInDelivery,
	StatusDelivered,
	StatusDeliveryConfirmed,
}

// 前進遷移（ハッピーパスの一本鎖）。キーに無いステータスは前進先なし。
var statusForward = map[string]string{
	StatusNew:             StatusConfirmed,
	StatusConfirmed:       StatusMovedToDelivery,
	StatusMovedToDelivery: StatusInDelivery,
	StatusInDelivery:      StatusDelivered,
}

// NextStatusName は前進遷移の次ステータス名を返す。
func NextStatusName(name string) (string, bool) {
	next, ok := statusForward[name]
	return next, ok
}

// 出口遷移を持たない終端ステータス。
// キャンセル済みも終端に含める（キャンセル済みの再キャンセルは許さない）。
var terminalStatuses = map[string]struct{}{
	StatusDeliveryConfirmed: {},
	StatusCancelledByUser:   {},
	StatusCancelledByAdmin:  {},
}

// IsTerminalStatus は以後の遷移が無いステータスかどうか。
func IsTerminalStatus(name string) bool {
	_, ok := terminalStatuses[name]
	return ok
}
