package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// OrderStateUsecase は注文ステータスの遷移ルールに答える。
type OrderStateUsecase struct {
	statusRepo repo.OrderStatusRepository
}

func NewOrderStateUsecase(statusRepo repo.OrderStatusRepository) *OrderStateUsecase {
	return &OrderStateUsecase{statusRepo: statusRepo}
}

// ListStatuses は参照テーブルの全ステータスを返す。
func (u *OrderStateUsecase) ListStatuses(ctx context.Context) ([]model.OrderStatus, error) {
	statuses, err := u.statusRepo.GetAll(ctx)
	if err != nil {
		return []model.OrderStatus{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return statuses, nil
}

// AllowedTransitions は現在ステータスIDから遷移できる候補を返す。
// 未知のIDはエラーにせず空を返す（呼び出し側が「遷移不可」として扱う）。
func (u *OrderStateUsecase) AllowedTransitions(ctx context.Context, currentStatusID int64) ([]model.OrderStatus, error) {
	statuses, err := u.statusRepo.GetAll(ctx)
	if err != nil {
		return []model.OrderStatus{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return allowedTransitions(currentStatusID, statuses), nil
}

// allowedTransitions は純粋な遷移クエリ。副作用なし、結果に重複なし。
// ルール1: 前進遷移は一本鎖で、次の1件だけ。
// ルール2: 終端以外からは管理者キャンセルへ常に行ける。
// ただし参照テーブルに管理者キャンセルが無い場合はその選択肢を黙って省く。
func allowedTransitions(currentStatusID int64, statuses []model.OrderStatus) []model.OrderStatus {
	byName := make(map[string]model.OrderStatus, len(statuses))
	var current model.OrderStatus
	found := false
	for _, s := range statuses {
		byName[s.Name] = s
		if s.ID == currentStatusID {
			current = s
			found = true
		}
	}
	if !found {
		return []model.OrderStatus{}
	}

	out := []model.OrderStatus{}
	if nextName, ok := model.NextStatusName(current.Name); ok {
		if next, ok := byName[nextName]; ok {
			out = append(out, next)
		}
	}
	if !model.IsTerminalStatus(current.Name) {
		if cancel, ok := byName[model.StatusCancelledByAdmin]; ok {
			out = append(out, cancel)
		}
	}
	return out
}
