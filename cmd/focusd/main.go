package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"focusd/internal/attention"
	"focusd/internal/attention/x11"
	"focusd/internal/config"
	"focusd/internal/daemon"
	"focusd/internal/database"
	"focusd/internal/notify"
	"focusd/internal/session"
	"focusd/internal/stats"
	"focusd/internal/web"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "serve":
		serveDaemon()
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "report":
		generateReport()
	case "clear":
		clearDatabase()
	case "version":
		fmt.Printf("focusd version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`focusd - Focus session tracker with streaks and achievements

Usage:
  focusd <command> [options]

Commands:
  serve              Start the session daemon with its HTTP API
  stop               Stop the session daemon
  status             Show daemon status and current session
  report [period]    Generate focus report (period: day, week, month)
  clear              Clear all session history and rewards
  version            Show version information
  help               Show this help message

Examples:
  focusd serve
  focusd status
  focusd report week
  focusd report week --json
  focusd stop

Environment Variables:
  FOCUSD_DB_PATH                 Database file path
  FOCUSD_GRACE_PERIOD            Start-of-session grace period in seconds
  FOCUSD_ACTIVE_IDLE_THRESHOLD   Active-mode idle threshold in seconds
  FOCUSD_READING_IDLE_THRESHOLD  Reading-mode idle threshold in seconds
  FOCUSD_IDLE_WARN_THRESHOLD     Idle warning threshold in seconds
  FOCUSD_PID_FILE                PID file path
  FOCUSD_WEB_HOST                API host
  FOCUSD_WEB_PORT                API port

Version: %s
`, version)
}

func serveDaemon() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	if os.Getenv("FOCUSD_DAEMON_CHILD") != "1" {
		daemonize()
		return
	}

	runServeDaemon(cfg, dm)
}

func runServeDaemon(cfg *config.Config, dm *daemon.Daemon) {
	logPath := fmt.Sprintf("/tmp/focusd-%d.log", os.Getuid())
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var source attention.Source
	if src, err := x11.New(); err == nil {
		source = src
		log.Println("Attention source initialized: x11")
	} else {
		source = attention.AlwaysOn{}
		log.Printf("X11 unavailable (%v), relying on activity pings only", err)
	}
	defer source.Close()

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	repo := database.NewRepository(db, cfg.Session.HistoryCap)
	controller := session.NewController(cfg, repo, source, notify.New())
	monitor := attention.NewMonitor(source, controller, 2*time.Second)
	webServer := web.NewServer(cfg, controller, repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Web server error: %v", err)
		}
	}()

	go func() {
		if err := monitor.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Activity monitor error: %v", err)
		}
	}()

	log.Println("Starting focusd daemon...")
	log.Printf("API available at: http://%s", webServer.GetAddress())
	log.Printf("Configuration:\n%s", cfg.String())

	<-sigChan
	log.Println("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cancel()
	monitor.Stop()
	controller.Shutdown() // records a running session as an early stop

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down web server: %v", err)
	}

	log.Println("Daemon stopped successfully")
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Daemon is not running")
		return
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}
	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Status: Not running")
		return
	}

	fmt.Printf("Status: Running (PID: %d)\n", pid)
	fmt.Printf("API: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Printf("Database: %s\n", cfg.Database.Path)

	url := fmt.Sprintf("http://%s:%d/api/session/status", cfg.Web.Host, cfg.Web.Port)
	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("\nCould not query session status: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var status session.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Printf("\nCould not decode session status: %v\n", err)
		return
	}

	fmt.Printf("\nSession:\n")
	fmt.Printf("  State: %s\n", status.State)
	fmt.Printf("  Mode: %s\n", status.Mode)
	if status.State == session.StateRunning {
		fmt.Printf("  Elapsed: %s of %ds\n", status.Time, status.Duration)
		fmt.Printf("  Focused: %v\n", status.Focused)
	}
}

func generateReport() {
	periodType := "day"
	if len(os.Args) > 2 {
		periodType = os.Args[2]
	}

	cfg := config.New()

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db, cfg.Session.HistoryCap)
	rep := stats.New(repo)

	jsonOutput := false
	if len(os.Args) > 3 && os.Args[3] == "--json" {
		jsonOutput = true
	}

	report, err := rep.GenerateReport(periodType)
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	if jsonOutput {
		jsonStr, err := rep.FormatReportJSON(report)
		if err != nil {
			log.Fatalf("Failed to format JSON: %v", err)
		}
		fmt.Println(jsonStr)
	} else {
		fmt.Println(rep.FormatReportText(report))
	}
}

func clearDatabase() {
	cfg := config.New()

	fmt.Print("This will delete all session history and rewards. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	repo := database.NewRepository(db, cfg.Session.HistoryCap)
	if err := repo.Clear(); err != nil {
		log.Fatalf("Failed to clear database: %v", err)
	}

	fmt.Println("Database cleared successfully")
}

func daemonize() {
	env := os.Environ()
	env = append(env, "FOCUSD_DAEMON_CHILD=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil},
		Sys: &syscall.SysProcAttr{
			Setsid: true,
		},
	}

	process, err := os.StartProcess(os.Args[0], os.Args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start daemon process: %v", err)
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: /tmp/focusd-%d.log\n", os.Getuid())
}
