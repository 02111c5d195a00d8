package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "lendingbook/internal/adapter/http"
	"lendingbook/internal/adapter/middleware"
	"lendingbook/internal/adapter/repository/docstore"
	"lendingbook/internal/adapter/repository/gormcache"
	"lendingbook/internal/config"
	"lendingbook/internal/infrastructure/cache"
	"lendingbook/internal/infrastructure/db"
	"lendingbook/internal/usecase/bootstrap"
	ledgeruc "lendingbook/internal/usecase/ledger"
	"lendingbook/internal/usecase/monitor"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var gdb *gorm.DB
	var err error
	switch cfg.DBEngine {
	case config.EngineMySQL:
		gdb, err = db.OpenMySQL(cfg.MySQLDSN())
	default:
		gdb, err = db.OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("open durable cache: %v", err)
	}

	snapshots, err := gormcache.NewStore(gdb)
	if err != nil {
		log.Fatalf("migrate snapshot slot: %v", err)
	}
	remote := docstore.NewClient(cfg.BinURL, cfg.MasterKey)

	// Bootstrap runs once; after this the ledger only changes through
	// the save path.
	led, src := bootstrap.Run(context.Background(), remote, snapshots)
	log.Printf("ledger installed from %s source", src)

	uc := ledgeruc.NewUsecase(led, snapshots, remote, cfg.AllowOverpayment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mon := monitor.New(remote, cfg.BinQuotaBytes)
	go mon.Run(ctx, time.Duration(cfg.UsageIntervalSecs)*time.Second)

	h := httpadp.NewHandler(mon)
	authH := httpadp.NewAuthHandler(uc)
	borrowerH := httpadp.NewBorrowerHandler(uc)
	loanH := httpadp.NewLoanHandler(uc)
	paymentH := httpadp.NewPaymentHandler(uc)
	settingsH := httpadp.NewSettingsHandler(uc)
	ledgerH := httpadp.NewLedgerHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("open redis: %v", err)
		}
		e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	}

	// routes
	e.GET("/health", h.Health)
	e.GET("/usage", h.Usage)
	e.GET("/summary", ledgerH.Summary)
	e.GET("/ledger", ledgerH.Snapshot)
	e.GET("/logs", ledgerH.Logs)

	e.POST("/login", authH.Login)
	e.POST("/logout", authH.Logout)
	e.POST("/verify-admin", authH.VerifyAdmin)

	e.GET("/borrowers", borrowerH.List)
	e.POST("/borrowers", borrowerH.Add)
	e.POST("/borrowers/:name/toggle", borrowerH.Toggle)

	e.GET("/loans", loanH.List)
	e.POST("/loans", loanH.Create)
	e.GET("/loans/:loan_id", loanH.Get)

	e.POST("/payments", paymentH.Record)

	settings := e.Group("/settings", httpadp.RequireAdmin(uc))
	settings.GET("", settingsH.Get)
	settings.POST("/password", settingsH.ChangePassword)
	settings.PUT("/rates", settingsH.UpdateRates)
	settings.POST("/users", settingsH.AddUser)
	settings.DELETE("/users/:index", settingsH.DeleteUser)
	settings.POST("/reset", settingsH.Reset)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
