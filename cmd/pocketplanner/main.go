package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pocket-planner/internal/config"
	"pocket-planner/internal/notify"
	"pocket-planner/internal/repository"
	"pocket-planner/internal/server"
	"pocket-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	events := repository.NewEvents()
	userRepo := repository.NewUserRepository(db, events)
	categoryRepo := repository.NewCategoryRepository(db, events)
	itemRepo := repository.NewItemRepository(db, events)
	medRepo := repository.NewMedicationRepository(db, events)

	var notifier notify.Notifier = notify.NewLogNotifier()
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("notifier: %v", err)
		}
		notifier = tg
	}

	scheduler := service.NewReminderScheduler(time.Local, notifier)
	unsubscribe := scheduler.Watch(events, medRepo)
	defer unsubscribe()

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	taskSvc := service.NewTaskService(itemRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo, itemRepo)
	medicationSvc := service.NewMedicationService(medRepo, scheduler)

	if err := medicationSvc.ResyncAll(ctx); err != nil {
		log.Fatalf("resync reminders: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	api := server.New(cfg.HTTPAddr, authSvc, taskSvc, categorySvc, medicationSvc)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := api.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Pocket planner listening on %s.", cfg.HTTPAddr)
	if err := api.Start(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
