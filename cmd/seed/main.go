package main

import (
	"flag"
	"os"

	"github.com/maisdocacau/storefront/internal/authz"
	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
)

func main() {
	var skipAdmin bool
	flag.BoolVar(&skipAdmin, "skip-admin", false, "不创建默认管理员")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 商品目录
	created, err := models.SeedCatalog(models.DB, models.DefaultProducts())
	if err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}
	stdLog.Printf("Catalog seeded: %d new products", created)

	// 内置角色
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap roles: %v", err)
	}
	roles, err := authzService.ListRoles()
	if err != nil {
		stdLog.Fatalf("Failed to list roles: %v", err)
	}
	stdLog.Printf("Roles ready: %v", roles)

	if skipAdmin {
		return
	}
	if err := models.InitDefaultAdmin(os.Getenv("MDC_DEFAULT_ADMIN_USERNAME"), os.Getenv("MDC_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Fatalf("Failed to create default admin: %v", err)
	}
	stdLog.Println("Seed completed")
}
