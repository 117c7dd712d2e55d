package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kasa_bridge/internal/config"
	"kasa_bridge/internal/discord"
	"kasa_bridge/internal/handlers"
	"kasa_bridge/internal/kasa"
	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/models"
	"kasa_bridge/internal/repository"
	"kasa_bridge/internal/repository/db"
	"kasa_bridge/internal/scheduler"
	"kasa_bridge/internal/server"
	"kasa_bridge/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title           Kasa Bridge Admin API
// @version         1.0
// @description     Drives a Kasa smart plug on behalf of Discord buttons and a daily schedule.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(config.DefaultOptions())
	if err != nil {
		logger.New(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalw("invalid schedule timezone", "timezone", cfg.Schedule.Timezone, "err", err)
	}

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	exec := kasa.NewCLIExecutor(kasa.Credentials{
		Host:     cfg.Kasa.DeviceIP,
		Username: cfg.Kasa.Username,
		Password: cfg.Kasa.Password,
		Dir:      cfg.Kasa.Dir,
	}, log.Named("kasa"), kasa.WithTool(cfg.Kasa.Tool))
	services := service.NewService(repos, exec, service.AuthConfig{
		AdminUser:         cfg.HTTP.AdminUser,
		AdminPasswordHash: cfg.HTTP.AdminPasswordHash,
		SigningKey:        cfg.HTTP.JWTSecret,
		TokenTTL:          cfg.HTTP.TokenTTL,
	}, log.Named("light"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// a bad schedule leaves the buttons working
	sched, err := scheduler.New(scheduler.DefaultJobs(services.Light), loc, log.Named("scheduler"))
	if err != nil {
		log.Errorw("scheduler_init_failed", "err", err)
	}

	surface := discord.NewSurfaceManager(log.Named("surface"))
	router := discord.NewRouter(services.Light, log.Named("interactions"))
	bot, err := discord.NewBot(cfg.Discord.Token, surface, router, startScheduler(sched, log), log.Named("discord"))
	if err != nil {
		log.Fatalw("failed to create discord session", "err", err)
	}
	if err := bot.Open(ctx); err != nil {
		log.Fatalw("failed to connect to discord", "err", err)
	}

	var srv *server.Server
	if cfg.HTTP.Enabled {
		srv = &server.Server{}
		apiHandler := handlers.NewHandler(services, statusFunc(surface, sched, loc), log.Named("http"))
		runHTTPServer(srv, cfg.HTTP.Port, apiHandler, log)
	}

	log.Infow("bridge_running", "http_enabled", cfg.HTTP.Enabled, "timezone", loc.String())

	waitForShutdown(cancel, sched, bot, srv, log)
}

// openDB opens the command log store; the default keeps it in memory.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dsn := cfg.DB.Path
	if dsn == "" {
		dsn = config.InMemoryDB
	}
	log.Infow("opening command log", "in_memory", dsn == config.InMemoryDB)
	return db.InitDB(dsn)
}

// startScheduler is the bot's ready hook. It runs once, after the first Ready.
func startScheduler(sched *scheduler.Scheduler, log *logger.Logger) func(ctx context.Context) {
	return func(ctx context.Context) {
		if sched == nil {
			log.Infow("scheduler_disabled")
			return
		}
		if err := sched.Start(ctx); err != nil {
			log.Errorw("scheduler_start_failed", "err", err)
		}
	}
}

func statusFunc(surface *discord.SurfaceManager, sched *scheduler.Scheduler, loc *time.Location) handlers.StatusFunc {
	return func() models.Status {
		st := models.Status{GeneratedAt: time.Now().In(loc)}
		st.ControlChannelID, _ = surface.Current()
		if sched != nil {
			st.SchedulerRunning = sched.Running()
			st.Schedule = sched.Entries()
		}
		return st
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, sched *scheduler.Scheduler, bot *discord.Bot, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infow("shutting down", "signal", sig.String())

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// let running jobs finish before their context is cancelled
	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-ctx.Done():
			log.Errorw("scheduler_stop_timeout")
		}
	}
	cancel()

	if err := bot.Close(); err != nil {
		log.Errorw("discord_close_failed", "err", err)
	}
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorw("server forced to shutdown", "err", err)
		}
	}
	_ = log.Sync()
}
