package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo}
}

type AdminOrderListInput struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type AdminChangeOrderStatusInput struct {
	Status string
}

// 注文一覧（管理者）
func (u *AdminOrderUsecase) List(ctx context.Context, in AdminOrderListInput) ([]OrderOutput, error) {
	// page/limitの最低限チェック
	if in.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		f := repo.AdminOrderListFilter{
			Page:   in.Page,
			Limit:  in.Limit,
			UserID: in.UserID,
			From:   in.From,
			To:     in.To,
		}

		//ステータス絞り込みは名前で受けてIDに解決する
		if strings.TrimSpace(in.Status) != "" {
			s, err := r.OrderStatuses().FindByName(ctx, in.Status)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "invalid status")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			f.StatusID = &s.ID
		}

		orders, _, err := r.Orders().ListAdmin(ctx, f)
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

// ChangeStatus は管理者による注文ステータス変更。
// 遷移候補は遷移ルール（前進1件＋管理者キャンセル）から出し、
// 要求ステータス名は大文字小文字を区別せず参照テーブルに解決する。
func (u *AdminOrderUsecase) ChangeStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminChangeOrderStatusInput) (OrderActionOutput, error) {
	if actorAdminUserID <= 0 {
		return OrderActionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderActionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	requested := strings.TrimSpace(in.Status)
	if requested == "" {
		return OrderActionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderActionOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		statuses, err := r.OrderStatuses().GetAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//遷移候補
		allowed := allowedTransitions(o.StatusID, statuses)
		if len(allowed) == 0 {
			return NewHTTPError(http.StatusConflict, "no allowed states to transition to")
		}

		//要求ステータス名を解決して候補にあるか確認
		var target *model.OrderStatus
		for i := range statuses {
			if strings.EqualFold(statuses[i].Name, requested) {
				target = &statuses[i]
				break
			}
		}
		if target == nil || !containsStatus(allowed, target.ID) {
			return NewHTTPError(http.StatusConflict, "invalid status selection")
		}

		beforeName := ""
		for _, s := range statuses {
			if s.ID == o.StatusID {
				beforeName = s.Name
				break
			}
		}

		// ステータス更新
		if err := r.Orders().UpdateStatus(ctx, orderID, target.ID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON := `{"status":"` + beforeName + `"}`
		afterJSON := `{"status":"` + target.Name + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderActionOutput{
			OrderID: orderID,
			Status:  target.Name,
			Updated: true,
			Message: "order status updated successfully",
		}
		return nil
	})

	if err != nil {
		return OrderActionOutput{}, err
	}
	return out, nil
}

func containsStatus(statuses []model.OrderStatus, id int64) bool {
	for _, s := range statuses {
		if s.ID == id {
			return true
		}
	}
	return false
}
