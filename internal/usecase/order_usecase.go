package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLineInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderInput struct {
	Lines          []OrderLineInput
	IdempotencyKey string
}

type OrderLineOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

// 商品が解決できず注文に入らなかった明細。
type SkippedLineOutput struct {
	ProductID int64  `json:"product_id"`
	Reason    string `json:"reason"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	Status     string            `json:"status"`
	TotalPrice int64             `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []OrderLineOutput `json:"items"`
}

type PlaceOrderOutput struct {
	Order   OrderOutput         `json:"order"`
	Skipped []SkippedLineOutput `json:"skipped,omitempty"`
}

// ライフサイクル操作の結果。状態の都合で動かせなかった場合は
// Updated=false とメッセージで返す（エラーにはしない）。
type OrderActionOutput struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Updated bool   `json:"updated"`
	Message string `json:"message"`
}

// ユーザー自身がキャンセルできる元ステータス。
var userCancellableStatuses = map[string]struct{}{
	model.StatusNew:             {},
	model.StatusMovedToDelivery: {},
	model.StatusDelivered:       {},
}

// PlaceOrder は明細入力から注文ヘッダ＋明細を1トランザクションで作る。
// 解決できなかった商品はその明細だけ落として続行する（注文全体は失敗させない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines := make([]validator.OrderLineRequest, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, validator.OrderLineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if err := validator.ValidateOrderLines(lines); err != nil {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > 255 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out PlaceOrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		if key != "" {
			existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if found {
				existingOut, err := loadOrderOutput(ctx, r, existing)
				if err != nil {
					return err
				}
				out = PlaceOrderOutput{Order: existingOut}
				return nil
			}
		}

		//初期ステータス（New）を参照テーブルから解決
		newStatus, err := r.OrderStatuses().FindByName(ctx, model.StatusNew)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "order statuses not seeded")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細ごとに商品を解決して価格をスナップショット
		orderLines := make([]model.OrderLine, 0, len(in.Lines))
		skipped := make([]SkippedLineOutput, 0)
		var total int64 = 0

		for _, l := range in.Lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
				//この明細だけ落として続行
				skipped = append(skipped, SkippedLineOutput{ProductID: l.ProductID, Reason: "product not found"})
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			name := ""
			title, err := r.ProductTitles().FindByID(ctx, p.TitleID)
			if err == nil {
				name = title.Name
			} else if !errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			now := time.Now()
			orderLines = append(orderLines, model.OrderLine{
				ProductID:           l.ProductID,
				ProductNameSnapshot: name,
				UnitPriceSnapshot:   p.UnitPrice,
				Quantity:            l.Quantity,
				CreatedAt:           now,
			})

			total += p.UnitPrice * l.Quantity
		}

		//全明細が落ちたら空注文になるので作らない
		if len(orderLines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "order must contain at least one line")
		}

		// 注文作成
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:         userID,
			StatusID:       newStatus.ID,
			TotalPrice:     total,
			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細一括作成
		if err := r.OrderLines().CreateBulk(ctx, orderID, orderLines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:         orderID,
			UserID:     userID,
			StatusID:   newStatus.ID,
			TotalPrice: total,
			CreatedAt:  now,
		}
		out = PlaceOrderOutput{
			Order:   toOrderOutput(created, newStatus.Name, orderLines),
			Skipped: skipped,
		}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		statusNames, err := statusNamesByID(ctx, r)
		if err != nil {
			return err
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderLines().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, statusNames[o.StatusID], lines))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		out, err = loadOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder はユーザー自身による注文キャンセル。
// New / 配送会社渡し / 配達済み からだけキャンセルできる。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, orderID int64) (OrderActionOutput, error) {
	return u.changeStatusAsOwner(
		ctx, userID, orderID,
		userCancellableStatuses,
		model.StatusCancelledByUser,
		"order cancelled successfully",
		"order cannot be cancelled at this stage",
		"can only cancel your own orders",
	)
}

// ConfirmDelivery は配達済みの注文に対するユーザーの受け取り確認。
func (u *OrderUsecase) ConfirmDelivery(ctx context.Context, userID int64, orderID int64) (OrderActionOutput, error) {
	return u.changeStatusAsOwner(
		ctx, userID, orderID,
		map[string]struct{}{model.StatusDelivered: {}},
		model.StatusDeliveryConfirmed,
		"order delivery confirmed successfully",
		"order cannot be confirmed at this stage",
		"can only confirm delivery for your own orders",
	)
}

// changeStatusAsOwner は「読む→所有確認→状態確認→書く」を1トランザクションで行う。
// 元ステータスが合わない場合は書き込まずに Updated=false で返す。
func (u *OrderUsecase) changeStatusAsOwner(
	ctx context.Context,
	userID int64,
	orderID int64,
	fromStatuses map[string]struct{},
	toStatusName string,
	okMessage string,
	rejectMessage string,
	permissionMessage string,
) (OrderActionOutput, error) {
	if userID <= 0 {
		return OrderActionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderActionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderActionOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//所有チェック
		if o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, permissionMessage)
		}

		current, err := r.OrderStatuses().FindByID(ctx, o.StatusID)
		if errors.Is(err, repo.ErrNotFound) {
			//参照先の無いステータスは「遷移不可」として扱う
			out = OrderActionOutput{OrderID: orderID, Status: "", Updated: false, Message: rejectMessage}
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if _, ok := fromStatuses[current.Name]; !ok {
			out = OrderActionOutput{OrderID: orderID, Status: current.Name, Updated: false, Message: rejectMessage}
			return nil
		}

		target, err := r.OrderStatuses().FindByName(ctx, toStatusName)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "order statuses not seeded")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, target.ID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderActionOutput{OrderID: orderID, Status: target.Name, Updated: true, Message: okMessage}
		return nil
	})

	if err != nil {
		return OrderActionOutput{}, err
	}
	return out, nil
}

func loadOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	lines, err := r.OrderLines().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	statusName := ""
	status, err := r.OrderStatuses().FindByID(ctx, o.StatusID)
	if err == nil {
		statusName = status.Name
	} else if !errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderOutput(o, statusName, lines), nil
}

func statusNamesByID(ctx context.Context, r repo.TxRepos) (map[int64]string, error) {
	statuses, err := r.OrderStatuses().GetAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	names := make(map[int64]string, len(statuses))
	for _, s := range statuses {
		names[s.ID] = s.Name
	}
	return names, nil
}

func toOrderOutput(o model.Order, statusName string, lines []model.OrderLine) OrderOutput {
	outLines := make([]OrderLineOutput, 0, len(lines))
	for _, l := range lines {
		outLines = append(outLines, OrderLineOutput{
			ProductID: l.ProductID,
			Name:      l.ProductNameSnapshot,
			UnitPrice: l.UnitPriceSnapshot,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		})
	}

	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		Status:     statusName,
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Items:      outLines,
	}
}
