package watch

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed assets/dashboard.html
var dashboardPage string

// Dashboard serves the live results page: a static HTML shell, a JSON
// snapshot endpoint, and a WebSocket that pushes every completed pass.
type Dashboard struct {
	hub    *ResultHub
	server *http.Server
	latest *Snapshot
	mutex  sync.RWMutex
	wg     sync.WaitGroup
}

// NewDashboard creates a dashboard listening on the given port.
func NewDashboard(port int) *Dashboard {
	d := &Dashboard{
		hub: NewResultHub(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", d.handleIndex)
	r.Get("/api/results", d.handleResults)
	r.Get("/ws", d.hub.HandleWebSocket)

	d.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: r,
	}

	return d
}

// Start begins serving in the background.
func (d *Dashboard) Start() error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[Dashboard] HTTP server error: %v", err)
		}
	}()
	return nil
}

// Close shuts down the server and disconnects all clients.
func (d *Dashboard) Close() error {
	err := d.server.Close()
	d.hub.Close()
	d.wg.Wait()
	return err
}

// URL returns the address browsers should open.
func (d *Dashboard) URL() string {
	return "http://" + d.server.Addr
}

// Publish stores a snapshot as the latest state and pushes it to all
// connected clients.
func (d *Dashboard) Publish(snapshot *Snapshot) {
	d.mutex.Lock()
	d.latest = snapshot
	d.mutex.Unlock()

	d.hub.NotifyResults(snapshot)
}

// NotifyLinting forwards a pass-started signal to connected clients.
func (d *Dashboard) NotifyLinting(files []string) {
	d.hub.NotifyLinting(files)
}

func (d *Dashboard) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, dashboardPage)
}

func (d *Dashboard) handleResults(w http.ResponseWriter, r *http.Request) {
	d.mutex.RLock()
	snapshot := d.latest
	d.mutex.RUnlock()

	if snapshot == nil {
		snapshot = &Snapshot{GeneratedAt: time.Now()}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Printf("[Dashboard] Failed to encode results: %v", err)
	}
}
