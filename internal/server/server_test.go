package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/softstreaks/internal/config"
	"github.com/julianstephens/softstreaks/internal/models"
	"github.com/julianstephens/softstreaks/internal/storage"
	"github.com/julianstephens/softstreaks/internal/tracker"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestWatchDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 100*time.Millisecond, func() { calls.Add(1) })
	}()
	time.Sleep(100 * time.Millisecond)

	slot := storage.NewJSONSlot(path)
	for i := 0; i < 5; i++ {
		if err := slot.Write(fmt.Sprintf(`{"streak":%d}`, i)); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files are ignored
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return calls.Load() >= 1 })
	time.Sleep(300 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one debounced call, got %d", n)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRunServesAndPublishesExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := storage.NewStore(storage.NewJSONSlot(path))
	tr, err := tracker.Open(store, tracker.WithLocation(time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{
			Tracker:   tr,
			Server:    config.ServerConfig{Host: "127.0.0.1", Port: port},
			WatchPath: path,
		})
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	waitFor(t, func() bool {
		res, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	})

	res, err := http.Get(base + "/api/events")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	events := make(chan string, 8)
	go func() {
		sc := bufio.NewScanner(res.Body)
		for sc.Scan() {
			events <- sc.Text()
		}
		close(events)
	}()
	time.Sleep(100 * time.Millisecond)

	// Another process writes the slot
	external, err := tr.State()
	if err != nil {
		t.Fatal(err)
	}
	external.Streak = 42
	external.Habits = models.DefaultHabits()
	if err := storage.NewStore(storage.NewJSONSlot(path)).Save(external); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(3 * time.Second)
	found := false
	for !found {
		select {
		case line, ok := <-events:
			if !ok {
				t.Fatal("event stream closed early")
			}
			if strings.HasPrefix(line, "data:") && strings.Contains(line, `"streak":42`) {
				found = true
			}
		case <-timeout:
			t.Fatal("no state.updated event after external write")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
