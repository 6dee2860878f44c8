package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminUserUsecase struct {
	users     repo.UserRepository
	auditRepo repo.AuditLogRepository
}

func NewAdminUserUsecase(users repo.UserRepository, auditRepo repo.AuditLogRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, auditRepo: auditRepo}
}

type AdminUserUpdateInput struct {
	Role     *string
	IsActive *bool
}

// ユーザー一覧（管理者）
func (u *AdminUserUsecase) List(ctx context.Context, page int, limit int) ([]UserOutput, int64, error) {
	if page < 1 {
		return []UserOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return []UserOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	users, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return []UserOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserOutput, 0, len(users))
	for i := range users {
		outs = append(outs, toUserOutput(&users[i]))
	}
	return outs, total, nil
}

// Update はロール変更・有効/無効の切り替え（管理者）。
func (u *AdminUserUsecase) Update(ctx context.Context, actorAdminUserID int64, targetUserID int64, in AdminUserUpdateInput) (UserOutput, error) {
	if actorAdminUserID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Role == nil && in.IsActive == nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}
	if in.Role != nil {
		switch model.Role(*in.Role) {
		case model.RoleUser, model.RoleAdmin:
		default:
			return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
		}
	}

	user, err := u.users.FindByID(ctx, targetUserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := `{"role":"` + string(user.Role) + `","is_active":` + boolJSON(user.IsActive) + `}`

	if in.Role != nil {
		user.Role = model.Role(*in.Role)
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := u.users.Update(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	afterJSON := `{"role":"` + string(user.Role) + `","is_active":` + boolJSON(user.IsActive) + `}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateUserRole,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserOutput(user), nil
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
