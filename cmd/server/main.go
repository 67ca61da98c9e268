package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/handler"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/middleware"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/repository/postgres"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/ipfilter"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/profile"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/report"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/platform/config"
	pg "github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/platform/db/postgres"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env は存在すれば読み込みます。
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	attendanceRepo := postgres.NewAttendanceRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	ipSettingsRepo := postgres.NewIPSettingsRepository(dbPool)

	attendanceSvc := attendance.NewService(attendanceRepo, attendance.NewClock(), txManager)
	profileSvc := profile.NewService(profileRepo, nil)
	ipFilterSvc := ipfilter.NewService(ipSettingsRepo, nil)
	reportSvc := report.NewService(attendanceRepo)

	feed := postgres.NewNotifyFeed(dbPool, attendanceRepo)
	watcher := attendance.NewWatcher(feed)

	mux := handler.NewRouter(handler.RouterConfig{
		Attendance: handler.NewAttendanceHandler(attendanceSvc, profileSvc),
		Feed:       handler.NewFeedHandler(watcher),
		Profile:    handler.NewProfileHandler(profileSvc),
		Admin:      handler.NewAdminHandler(reportSvc, attendanceSvc),
		IPSettings: handler.NewIPSettingsHandler(ipFilterSvc),
		Auth:       middleware.AuthJWT(cfg.Auth.JWTSecret),
		IPGate:     middleware.IPGate(ipFilterSvc),
	})

	httpServer := server.New(cfg.Server.ListenAddr, mux)

	log.Printf("HTTP server listening on %s", cfg.Server.ListenAddr)

	if err := httpServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
