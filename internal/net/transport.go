package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// LinkScheme prefixes the share links shown by a hosting board.
	LinkScheme = "shapeboard://"
	// Path is where the hub is mounted on the host.
	Path = "/board"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1 << 20
	sendBuffer     = 64
)

// ShareLink is the link a peer passes to `join`.
func ShareLink(ip string, port int) string {
	return fmt.Sprintf("%s%s:%d", LinkScheme, ip, port)
}

// ParseLink turns a share link, a bare host:port or a ws:// URL into the
// websocket URL of the hub.
func ParseLink(link string) (string, error) {
	if strings.HasPrefix(link, "ws://") || strings.HasPrefix(link, "wss://") {
		return link, nil
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, LinkScheme), "/")
	if i := strings.LastIndex(addr, ":"); i <= 0 || i == len(addr)-1 {
		return "", fmt.Errorf("link %q: want host:port", link)
	}
	return "ws://" + addr + Path, nil
}

type peer struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (p *peer) stop() {
	p.once.Do(func() { close(p.done) })
}

// enqueue never blocks; a peer whose buffer is full is too slow to keep.
func (p *peer) enqueue(b []byte) bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.send <- b:
		return true
	default:
		return false
	}
}

func (p *peer) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()
	for {
		select {
		case <-p.done:
			_ = p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case b := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				p.stop()
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.stop()
				return
			}
		}
	}
}

// Hub is the hosting side of a shared board. Every peer gets a snapshot on
// connect; operations from one peer are relayed to all the others and
// handed to OnMessage.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	// Snapshot builds the message sent to a newly connected peer.
	Snapshot func() Message
	// OnMessage is called on the sending peer's reader goroutine.
	OnMessage func(Message)

	mu     sync.Mutex
	peers  map[*peer]struct{}
	closed bool
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log: log.Named("hub"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// peers are other boards on the LAN, not browsers
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

func (h *Hub) Peers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "board closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	p := &peer{conn: conn, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
	go p.writeLoop()

	// Registering before the snapshot is taken means an operation racing
	// the connect is either in the snapshot or delivered after it.
	h.mu.Lock()
	h.peers[p] = struct{}{}
	h.mu.Unlock()
	h.log.Info("peer connected", zap.String("remote", r.RemoteAddr), zap.Int("peers", h.Peers()))
	defer h.drop(p, "disconnected")

	if h.Snapshot != nil {
		b, err := json.Marshal(h.Snapshot())
		if err != nil || !p.enqueue(b) {
			h.log.Warn("could not send snapshot", zap.String("remote", r.RemoteAddr), zap.Error(err))
			return
		}
	}

	h.readLoop(p, r.RemoteAddr)
}

func (h *Hub) readLoop(p *peer, remote string) {
	p.conn.SetReadLimit(maxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("peer read failed", zap.String("remote", remote), zap.Error(err))
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Warn("dropping undecodable message", zap.String("remote", remote), zap.Error(err))
			continue
		}
		err = msg.Validate()
		if err == nil && msg.Type != TypeCut {
			// undecodable records stop here rather than at every peer
			_, err = msg.Shapes()
		}
		if err != nil || msg.Type == TypeSnapshot {
			h.log.Warn("dropping message", zap.String("remote", remote), zap.String("type", string(msg.Type)), zap.Error(err))
			continue
		}
		h.relay(data, p)
		if h.OnMessage != nil {
			h.OnMessage(msg)
		}
	}
}

func (h *Hub) drop(p *peer, reason string) {
	h.mu.Lock()
	_, ok := h.peers[p]
	delete(h.peers, p)
	h.mu.Unlock()
	p.stop()
	if ok {
		h.log.Info("peer dropped", zap.String("reason", reason), zap.String("remote", p.conn.RemoteAddr().String()))
	}
}

func (h *Hub) relay(data []byte, except *peer) {
	var slow []*peer
	h.mu.Lock()
	for p := range h.peers {
		if p != except && !p.enqueue(data) {
			slow = append(slow, p)
		}
	}
	h.mu.Unlock()
	for _, p := range slow {
		h.drop(p, "send buffer full")
	}
}

// Broadcast sends a host-side operation to every peer. It never blocks, so
// it is safe to call from the UI thread.
func (h *Hub) Broadcast(msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.relay(data, nil)
	return nil
}

// Close disconnects every peer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	peers := h.peers
	h.peers = make(map[*peer]struct{})
	h.mu.Unlock()
	for p := range peers {
		p.stop()
	}
}

// Serve runs the hub on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	h.log.Info("hub listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		h.Close()
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	case err := <-errc:
		h.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("hub %s: %w", addr, err)
	}
}

// Client is a joined peer's connection to a hub.
type Client struct {
	log  *zap.Logger
	conn *websocket.Conn
	mu   sync.Mutex
}

func Dial(ctx context.Context, url string, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	conn.SetReadLimit(maxMessageSize)
	return &Client{log: log.Named("client"), conn: conn}, nil
}

func (c *Client) Send(msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Run reads messages until the hub goes away or ctx is cancelled. A clean
// close by the hub returns nil.
func (c *Client) Run(ctx context.Context, onMessage func(Message)) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.Close()
		case <-stop:
		}
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		if err := msg.Validate(); err != nil {
			c.log.Warn("dropping message", zap.Error(err))
			continue
		}
		onMessage(msg)
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return c.conn.Close()
}
