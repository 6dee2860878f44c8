package main

import (
	"context"
	"errors"
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal(err)
	}
	if err := db.SeedOrderStatuses(gormDB); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	manufacturerRepo := infraRepo.NewManufacturerGormRepository(gormDB)
	titleRepo := infraRepo.NewProductTitleGormRepository(gormDB)
	statusRepo := infraRepo.NewOrderStatusGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//初期管理者（設定があるときだけ）
	if err := seedAdminUser(cfg, userRepo); err != nil {
		log.Fatal(err)
	}

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, manufacturerRepo, titleRepo)
	productUC := usecase.NewProductUsecase(productRepo, titleRepo, catalogUC, auditRepo)
	orderStateUC := usecase.NewOrderStateUsecase(statusRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, auditRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	productH := handler.NewProductHandler(productUC)
	catalogH := handler.NewCatalogHandler(catalogUC)
	orderH := handler.NewOrderHandler(orderUC, orderStateUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC)
	adminProductH := handler.NewAdminProductHandler(productUC)
	adminUserH := handler.NewAdminUserHandler(adminUserUC)
	adminAuditH := handler.NewAdminAuditLogHandler(auditUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, authH, productH, catalogH, orderH, adminOrderH, adminProductH, adminUserH, adminAuditH); err != nil {
		log.Fatal(err)
	}
}

// seedAdminUser はADMIN_EMAIL/ADMIN_PASSWORDから管理者を作る。既にいれば何もしない。
func seedAdminUser(cfg config.Config, users repo.UserRepository) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx := context.Background()

	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return err
	}

	return users.Create(ctx, &model.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	})
}
