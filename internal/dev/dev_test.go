package dev

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

func isRunning(w *Watcher) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func startWatcher(t *testing.T, config WatcherConfig) (*Watcher, <-chan []Change) {
	t.Helper()

	watcher, err := NewWatcher(config)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	changes := make(chan []Change, 10)
	watcher.OnChange(func(c []Change) {
		changes <- c
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go watcher.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for !isRunning(watcher) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	// Give Start time to register the directories.
	time.Sleep(100 * time.Millisecond)
	return watcher, changes
}

func waitChanges(t *testing.T, changes <-chan []Change) []Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for change")
		return nil
	}
}

func TestWatcher_Modify(t *testing.T) {
	tmpDir := t.TempDir()
	page := filepath.Join(tmpDir, "index.yaml")
	if err := os.WriteFile(page, []byte("[h1, Home]"), 0644); err != nil {
		t.Fatal(err)
	}

	watcher, changes := startWatcher(t, WatcherConfig{
		Paths:    []string{tmpDir},
		Debounce: 50 * time.Millisecond,
	})
	defer watcher.Stop()

	if err := os.WriteFile(page, []byte("[h1, Changed]"), 0644); err != nil {
		t.Fatal(err)
	}

	got := waitChanges(t, changes)
	if len(got) != 1 {
		t.Fatalf("expected one coalesced change, got %v", got)
	}
	if got[0].Path != page || got[0].Type != ChangePage {
		t.Errorf("change = %+v", got[0])
	}
}

func TestWatcher_NewDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	watcher, changes := startWatcher(t, WatcherConfig{
		Paths:    []string{tmpDir},
		Debounce: 50 * time.Millisecond,
	})
	defer watcher.Stop()

	sub := filepath.Join(tmpDir, "guides")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	page := filepath.Join(sub, "setup.json")
	if err := os.WriteFile(page, []byte(`["h1"]`), 0644); err != nil {
		t.Fatal(err)
	}

	for {
		got := waitChanges(t, changes)
		for _, c := range got {
			if c.Path == page {
				return
			}
		}
	}
}

func TestWatcher_Ignore(t *testing.T) {
	w := &Watcher{config: WatcherConfig{Ignore: DefaultIgnore}}

	tests := []struct {
		path string
		want bool
	}{
		{"pages/index.yaml", false},
		{"pages/.git/config", true},
		{"pages/node_modules/x.json", true},
		{"pages/index.yaml.swp", true},
		{"pages/index.yaml~", true},
		{"pages/.#index.yaml", true},
	}

	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	w.config.Ignore = []string{"drafts/old", "build/*.json"}
	if !w.shouldIgnore("pages/drafts/old/a.yaml") {
		t.Error("segment pattern should match")
	}
	if w.shouldIgnore("pages/drafts/new/a.yaml") {
		t.Error("segment pattern should not match a different directory")
	}
	if !w.shouldIgnore("build/a.json") {
		t.Error("path glob should match")
	}
}

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		path string
		want ChangeType
	}{
		{"pages/index.yaml", ChangePage},
		{"pages/a.YML", ChangePage},
		{"pages/a.json", ChangePage},
		{"markup.yaml", ChangeConfig},
		{"static/site.css", ChangeAsset},
	}

	for _, tt := range tests {
		if got := classifyChange(tt.path); got != tt.want {
			t.Errorf("classifyChange(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcher_NotRunningInitially(t *testing.T) {
	watcher, err := NewWatcher(WatcherConfig{Paths: []string{t.TempDir()}})
	if err != nil {
		t.Fatal(err)
	}

	if isRunning(watcher) {
		t.Error("Watcher should not be running initially")
	}
	watcher.Stop()
}

func TestWatcher_FlushCallbacksDoNotOverlap(t *testing.T) {
	watcher, err := NewWatcher(WatcherConfig{Paths: []string{t.TempDir()}})
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	var active, overlaps, calls int32
	watcher.OnChange(func([]Change) {
		if atomic.AddInt32(&active, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		atomic.AddInt32(&calls, 1)
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := filepath.Join("pages", string(rune('a'+i))+".yaml")
			watcher.mu.Lock()
			watcher.pending[name] = Change{Path: name, Type: ChangePage}
			watcher.mu.Unlock()
			watcher.flush()
		}(i)
	}
	wg.Wait()

	if overlaps != 0 {
		t.Errorf("flush callbacks overlapped %d times", overlaps)
	}
	if calls == 0 {
		t.Error("expected at least one callback")
	}
}

func dialReload(t *testing.T, rs *ReloadServer) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(rs)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + ReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for rs.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if rs.ClientCount() != 1 {
		t.Fatalf("ClientCount() = %d, want 1", rs.ClientCount())
	}
	return conn
}

func TestReloadServer(t *testing.T) {
	rs := NewReloadServer(nil)
	if rs.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", rs.ClientCount())
	}
	conn := dialReload(t, rs)

	rs.NotifyError("index", "M010: Void tag cannot have children")
	rs.NotifyReload("index")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ReloadMessage
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != ReloadTypeError || msg.Page != "index" || !strings.Contains(msg.Error, "M010") {
		t.Errorf("first message = %+v", msg)
	}

	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"type":"reload","page":"index"}` {
		t.Errorf("second message = %s", data)
	}

	rs.ClearError()
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"type":"clear"}` {
		t.Errorf("third message = %s", data)
	}

	rs.Close()
	if rs.ClientCount() != 0 {
		t.Errorf("ClientCount() after Close = %d", rs.ClientCount())
	}
}

func TestReloadServer_ConcurrentNotify(t *testing.T) {
	rs := NewReloadServer(nil)
	conn := dialReload(t, rs)

	const senders, perSender = 8, 200
	received := make(chan int, 1)
	go func() {
		n := 0
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		for n < senders*perSender {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			n++
		}
		received <- n
	}()

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perSender; j++ {
				rs.NotifyReload("index")
			}
		}()
	}
	wg.Wait()

	if n := <-received; n != senders*perSender {
		t.Errorf("received %d messages, want %d", n, senders*perSender)
	}
	if rs.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", rs.ClientCount())
	}
}

func TestReloadServer_RejectsPlainHTTP(t *testing.T) {
	rs := NewReloadServer(nil)
	rec := httptest.NewRecorder()
	rs.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ReloadPath, nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInjectScript(t *testing.T) {
	got := InjectScript("<html><body><p>x</p></body></html>")
	if !strings.HasSuffix(got, ClientScript+"</body></html>") {
		t.Errorf("script should precede </body>: %q", got)
	}

	got = InjectScript("<p>x</p>")
	if got != "<p>x</p>"+ClientScript {
		t.Errorf("script should be appended: %q", got)
	}
}

func TestClientScript(t *testing.T) {
	for _, want := range []string{"WebSocket", ReloadPath, "location.reload"} {
		if !strings.Contains(ClientScript, want) {
			t.Errorf("ClientScript should contain %q", want)
		}
	}
}
