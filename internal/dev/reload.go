package dev

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// ReloadPath is the WebSocket endpoint browsers connect to.
const ReloadPath = "/_markup/reload"

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
	Page  string            `json:"page,omitempty"`
}

// reloadClient serializes writes to one connection; gorilla allows a
// single concurrent writer.
type reloadClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *reloadClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// ReloadServer manages WebSocket connections for live reload.
type ReloadServer struct {
	clients  map[*websocket.Conn]*reloadClient
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadServer creates a new reload server.
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadServer{
		clients: make(map[*websocket.Conn]*reloadClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // watch mode is local only
			},
		},
		logger: logger.With("component", "reload"),
	}
}

// ServeHTTP upgrades the request and holds the connection until the
// client disconnects.
func (r *ReloadServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	r.mu.Lock()
	r.clients[conn] = &reloadClient{conn: conn}
	r.mu.Unlock()
	r.logger.Debug("reload client connected", "remote", req.RemoteAddr)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.mu.Lock()
	delete(r.clients, conn)
	r.mu.Unlock()
	conn.Close()
}

// NotifyReload sends a full page reload message to all clients.
func (r *ReloadServer) NotifyReload(page string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeFull, Page: page})
}

// NotifyError sends an error message to all clients.
func (r *ReloadServer) NotifyError(page, errMsg string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeError, Page: page, Error: errMsg})
}

// ClearError clears the error overlay on all clients.
func (r *ReloadServer) ClearError() {
	r.broadcast(ReloadMessage{Type: ReloadTypeClear})
}

// broadcast sends a message to all connected clients.
func (r *ReloadServer) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.RLock()
	clients := make([]*reloadClient, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	for _, client := range clients {
		if err := client.write(data); err != nil {
			r.mu.Lock()
			delete(r.clients, client.conn)
			r.mu.Unlock()
			client.conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}

// InjectScript adds the reload client to an HTML page, before </body> when
// the page has one.
func InjectScript(html string) string {
	if i := strings.LastIndex(strings.ToLower(html), "</body>"); i >= 0 {
		return html[:i] + ClientScript + html[i:]
	}
	return html + ClientScript
}

// ClientScript is the browser side of the reload protocol.
const ClientScript = `<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '` + ReloadPath + `');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'reload':
                    location.reload();
                    break;
                case 'error':
                    showErrorOverlay(msg.page, msg.error);
                    break;
                case 'clear':
                    clearErrorOverlay();
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function showErrorOverlay(page, error) {
        clearErrorOverlay();

        var overlay = document.createElement('div');
        overlay.id = 'markup-error-overlay';
        overlay.style.cssText = 'position:fixed;top:0;left:0;right:0;bottom:0;background:rgba(0,0,0,0.9);color:#fff;font-family:monospace;font-size:14px;padding:20px;overflow:auto;z-index:999999;';

        var title = document.createElement('h2');
        title.style.cssText = 'color:#ff5555;margin:0 0 20px;';
        title.textContent = 'Render error in ' + (page || 'page');

        var pre = document.createElement('pre');
        pre.style.cssText = 'white-space:pre-wrap;word-wrap:break-word;';
        pre.textContent = error;

        overlay.appendChild(title);
        overlay.appendChild(pre);
        document.body.appendChild(overlay);
    }

    function clearErrorOverlay() {
        var overlay = document.getElementById('markup-error-overlay');
        if (overlay) {
            overlay.remove();
        }
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>`
