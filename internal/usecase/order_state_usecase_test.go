package usecase_test

import (
	"app/internal/domain/model"
	"app/internal/usecase"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type StateStatusRepoMock struct{ mock.Mock }

func (m *StateStatusRepoMock) GetAll(ctx context.Context) ([]model.OrderStatus, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.OrderStatus)
	return items, args.Error(1)
}

func (m *StateStatusRepoMock) FindByID(ctx context.Context, id int64) (model.OrderStatus, error) {
	panic("not used in OrderStateUsecase tests")
}

func (m *StateStatusRepoMock) FindByName(ctx context.Context, name string) (model.OrderStatus, error) {
	panic("not used in OrderStateUsecase tests")
}

func (m *StateStatusRepoMock) Create(ctx context.Context, s model.OrderStatus) (model.OrderStatus, error) {
	panic("not used in OrderStateUsecase tests")
}

// =====================
// Helpers
// =====================

// seededStatuses はシード順どおりの参照テーブル（ID 1始まり）。
func seededStatuses() []model.OrderStatus {
	out := make([]model.OrderStatus, 0, len(model.OrderStatusNames))
	for i, name := range model.OrderStatusNames {
		out = append(out, model.OrderStatus{ID: int64(i + 1), Name: name})
	}
	return out
}

func statusIDByName(t *testing.T, statuses []model.OrderStatus, name string) int64 {
	t.Helper()
	for _, s := range statuses {
		if s.Name == name {
			return s.ID
		}
	}
	t.Fatalf("status %q not in table", name)
	return 0
}

func statusNames(statuses []model.OrderStatus) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.Name)
	}
	return names
}

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

// =====================
// AllowedTransitions
// =====================

func TestOrderStateUsecase_AllowedTransitions_FromNew(t *testing.T) {
	statuses := seededStatuses()

	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(statuses, nil)

	uc := usecase.NewOrderStateUsecase(repoMock)

	out, err := uc.AllowedTransitions(context.Background(), statusIDByName(t, statuses, model.StatusNew))
	assert.NoError(t, err)
	assert.Equal(t, []string{model.StatusConfirmed, model.StatusCancelledByAdmin}, statusNames(out))
}

func TestOrderStateUsecase_AllowedTransitions_FromInDelivery(t *testing.T) {
	statuses := seededStatuses()

	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(statuses, nil)

	uc := usecase.NewOrderStateUsecase(repoMock)

	out, err := uc.AllowedTransitions(context.Background(), statusIDByName(t, statuses, model.StatusInDelivery))
	assert.NoError(t, err)
	assert.Equal(t, []string{model.StatusDelivered, model.StatusCancelledByAdmin}, statusNames(out))
}

func TestOrderStateUsecase_AllowedTransitions_FromDelivered_OnlyAdminCancel(t *testing.T) {
	statuses := seededStatuses()

	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(statuses, nil)

	uc := usecase.NewOrderStateUsecase(repoMock)

	//受け取り確認はユーザー操作なので管理者の前進候補には出ない
	out, err := uc.AllowedTransitions(context.Background(), statusIDByName(t, statuses, model.StatusDelivered))
	assert.NoError(t, err)
	assert.Equal(t, []string{model.StatusCancelledByAdmin}, statusNames(out))
}

func TestOrderStateUsecase_AllowedTransitions_TerminalStatusesAreEmpty(t *testing.T) {
	statuses := seededStatuses()

	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(statuses, nil)

	uc := usecase.NewOrderStateUsecase(repoMock)

	for _, name := range []string{
		model.StatusDeliveryConfirmed,
		model.StatusCancelledByUser,
		model.StatusCancelledByAdmin,
	} {
		out, err := uc.AllowedTransitions(context.Background(), statusIDByName(t, statuses, name))
		assert.NoError(t, err)
		assert.Empty(t, out, "terminal status %q must have no transitions", name)
	}
}

func TestOrderStateUsecase_AllowedTransitions_UnknownIDIsEmptyNotError(t *testing.T) {
	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(seededStatuses(), nil)

	uc := usecase.NewOrderStateUsecase(repoMock)

	out, err := uc.AllowedTransitions(context.Background(), 999)
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestOrderStateUsecase_AllowedTransitions_AdminCancelMissingFromTable(t *testing.T) {
	//管理者キャンセルをシードしていないテーブルでは候補から黙って消える
	statuses := []model.OrderStatus{}
	for _, s := range seededStatuses() {
		if s.Name == model.StatusCancelledByAdmin {
			continue
		}
		statuses = append(statuses, s)
	}

	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(statuses, nil)

	uc := usecase.NewOrderStateUsecase(repoMock)

	out, err := uc.AllowedTransitions(context.Background(), statusIDByName(t, statuses, model.StatusNew))
	assert.NoError(t, err)
	assert.Equal(t, []string{model.StatusConfirmed}, statusNames(out))
}

func TestOrderStateUsecase_AllowedTransitions_RepeatedCallSameResult(t *testing.T) {
	statuses := seededStatuses()

	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(statuses, nil)

	uc := usecase.NewOrderStateUsecase(repoMock)
	id := statusIDByName(t, statuses, model.StatusConfirmed)

	first, err := uc.AllowedTransitions(context.Background(), id)
	assert.NoError(t, err)
	second, err := uc.AllowedTransitions(context.Background(), id)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

// =====================
// ListStatuses
// =====================

func TestOrderStateUsecase_ListStatuses_Success(t *testing.T) {
	statuses := seededStatuses()

	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(statuses, nil)

	uc := usecase.NewOrderStateUsecase(repoMock)

	out, err := uc.ListStatuses(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, statuses, out)
}

func TestOrderStateUsecase_ListStatuses_DBError(t *testing.T) {
	repoMock := new(StateStatusRepoMock)
	repoMock.On("GetAll", mock.Anything).Return(nil, errors.New("boom"))

	uc := usecase.NewOrderStateUsecase(repoMock)

	_, err := uc.ListStatuses(context.Background())
	assertErrContains(t, err, "db error")
}
