package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path (default ~/.mudra/mudra.db)")
	actionDir := flag.String("actions", "actions", "directory of action binding manifests")
	withTray := flag.Bool("tray", false, "run the system tray (desktop hosts)")
	flag.Parse()

	fmt.Println("Mudra - Touch Gesture Recognition")

	path := *dbPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dbDir := filepath.Join(homeDir, ".mudra")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		path = filepath.Join(dbDir, "mudra.db")
	}

	st, err := store.New(path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{Store: st})
	a.SetEnabled(true)
	a.Start()
	defer a.Stop()

	// Action bindings fire external commands on matching events.
	actions := action.NewManager(*actionDir)
	if err := actions.Discover(); err != nil {
		log.Printf("Failed to load action bindings: %v", err)
	} else if n := len(actions.List()); n > 0 {
		log.Printf("Loaded %d action bindings from %s", n, actions.BindingDir())
	}
	go action.Dispatch(a.Subscribe(), actions, action.NewExecutor(action.DefaultTimeoutMs))

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	})

	if !*withTray {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Feed the last recognized gesture into the tray menu.
	t := tray.New()
	events := a.Subscribe()
	go func() {
		for e := range events {
			if e.Type == app.EventGesture && e.State == "recognized" {
				t.SetLastEvent(e.Gesture)
			}
		}
	}()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		log.Printf("Recognition enabled: %v", enabled)
	})
	t.OnDashboard(func() {
		if err := openBrowser("http://localhost" + *addr); err != nil {
			log.Printf("Failed to open dashboard: %v", err)
		}
	})
	t.OnQuit(func() {
		log.Println("Shutting down")
	})

	// Blocks until quit
	t.Run()
}

// openBrowser opens the given URL with the platform's default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// findWebDir searches for the web directory in common locations.
// It checks "web", "../web", "../../web", and ~/.mudra/web, returning
// the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
