// Package waterlink is a client-side control plane for a Lavalink-style
// audio node. It keeps one persistent control socket to the node, tracks
// per-guild playback state through Player objects, and bridges Discord
// voice-session signaling between the sharded gateway and the node.
//
// The host constructs one Connection per process, passes it to whatever
// needs it, and forwards voice-server-update notifications from its
// Discord session layer into HandleVoiceServerUpdate.
package waterlink

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"waterlink/pkg/jobmgr"
)

// Connection manages the control-socket session with the audio node. At
// most one socket is live at a time; on reconnect the socket is replaced
// wholesale along with its decode and reconciliation loops.
type Connection struct {
	gw Gateway

	// Tuning knobs. The defaults are load-bearing: the 10 s settle delay
	// covers Discord's post-reconnect READY/RESUMED window and the 1 s
	// pace keeps voice-state updates under the gateway rate limit. Adjust
	// only before Connect.
	ReconcileInterval   time.Duration
	SettleDelay         time.Duration
	ReconnectPace       time.Duration
	ReadyPoll           time.Duration
	ReconnectBackoff    time.Duration // Supervise: first redial delay
	MaxReconnectBackoff time.Duration // Supervise: redial delay cap

	mu         sync.Mutex
	socket     *websocket.Conn
	open       bool
	done       chan struct{} // closed when the current socket's decode loop exits
	restURL    string
	password   string
	shardCount int
	players    map[int64]*Player
	down       map[int]bool
	stats      Stats

	writeMu sync.Mutex // serializes socket writes

	httpClient *http.Client
	jobs       *jobmgr.Manager
}

// New creates a Connection bound to the given gateway adapter. Call
// Connect (or Supervise) before issuing commands.
func New(gw Gateway) *Connection {
	c := &Connection{
		gw:                  gw,
		ReconcileInterval:   100 * time.Millisecond,
		SettleDelay:         10 * time.Second,
		ReconnectPace:       time.Second,
		ReadyPoll:           10 * time.Millisecond,
		ReconnectBackoff:    time.Second,
		MaxReconnectBackoff: 30 * time.Second,
		players:             make(map[int64]*Player),
		down:                make(map[int]bool),
		httpClient:          &http.Client{Timeout: 10 * time.Second},
		jobs:                jobmgr.New(),
	}
	c.jobs.OnDone = func(name string, err error) {
		if err != nil && err != context.Canceled {
			log.Printf("[Waterlink] job %s: %v", name, err)
		}
	}
	return c
}

// Connect waits for the Discord side to report ready, opens the control
// socket, and starts the decode and shard-reconciliation loops. A rejected
// handshake fails the call and is not retried here; use Supervise for a
// self-healing session.
func (c *Connection) Connect(ctx context.Context, password, wsURL, restURL string) error {
	for !c.gw.Ready() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.ReadyPoll):
		}
	}

	headers := http.Header{}
	headers.Set("Authorization", password)
	headers.Set("Num-Shards", strconv.Itoa(c.gw.ShardCount()))
	headers.Set("User-Id", c.gw.UserID())

	sock, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		return fmt.Errorf("control socket handshake: %w", err)
	}

	c.mu.Lock()
	if c.socket != nil {
		c.socket.Close()
	}
	c.socket = sock
	c.open = true
	c.done = make(chan struct{})
	c.password = password
	c.restURL = restURL
	c.shardCount = c.gw.ShardCount()
	done := c.done
	c.mu.Unlock()

	log.Printf("[Waterlink] connected to node at %s", wsURL)

	go c.eventLoop(sock, done)
	go c.reconcileLoop(done)
	return nil
}

// Close tears down the control socket. The decode loop observes the closed
// socket and exits with ErrDisconnected.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.socket == nil {
		return nil
	}
	c.open = false
	return c.socket.Close()
}

// Connected reports whether a live control socket exists. Player lookups
// and command sends are legal regardless; sends against a dead socket fail
// with ErrDisconnected.
func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socket != nil && c.open
}

// WaitUntilReady blocks until the node connection is established or ctx is
// cancelled. It polls; impose a timeout through ctx if needed.
func (c *Connection) WaitUntilReady(ctx context.Context) error {
	for !c.Connected() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.ReadyPoll):
		}
	}
	return nil
}

// Player returns the guild's player, creating it on first lookup. The
// same guild id always yields the same instance. Identifiers that are not
// decimal snowflakes are rejected with ErrInvalidGuildID.
func (c *Connection) Player(guildID string) (*Player, error) {
	id, err := ParseSnowflake(guildID)
	if err != nil {
		return nil, err
	}
	return c.PlayerByID(id), nil
}

// PlayerByID is Player for callers that already hold the integer id.
func (c *Connection) PlayerByID(guildID int64) *Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[guildID]
	if !ok {
		p = newPlayer(c, guildID)
		c.players[guildID] = p
	}
	return p
}

// RemovePlayer drops a guild's player from the registry. Players are never
// evicted automatically; the registry is intentionally unbounded at the
// guild counts a single bot process sees.
func (c *Connection) RemovePlayer(guildID int64) {
	c.mu.Lock()
	delete(c.players, guildID)
	c.mu.Unlock()
}

// Stats returns the node's most recent statistics report.
func (c *Connection) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HandleVoiceServerUpdate is the voice-session bridge: the host calls it
// for every voice-server-update notification its Discord session receives.
// Notifications for guilds without a pending connect are ignored as stale;
// otherwise the pending connect is completed by forwarding the session id
// and the raw update payload to the node.
func (c *Connection) HandleVoiceServerUpdate(guildID string, event json.RawMessage) error {
	id, err := ParseSnowflake(guildID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	p := c.players[id]
	c.mu.Unlock()
	if p == nil || !p.clearConnecting() {
		return nil
	}

	return c.send(voiceUpdateCommand{
		Op:        "voiceUpdate",
		GuildID:   guildID,
		SessionID: c.gw.VoiceSessionID(guildID),
		Event:     event,
	})
}

func (c *Connection) gateway() Gateway { return c.gw }

// send writes one command frame to the current socket. Writes are
// serialized; commands for a guild are therefore ordered relative to each
// other.
func (c *Connection) send(v any) error {
	c.mu.Lock()
	sock, open := c.socket, c.open
	c.mu.Unlock()
	if sock == nil || !open {
		return ErrDisconnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := sock.WriteJSON(v); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return nil
}

// eventLoop receives and dispatches node frames for the lifetime of one
// socket. It terminates when the remote end closes the socket; nothing here
// restarts the session (see Supervise).
func (c *Connection) eventLoop(sock *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			c.markClosed(sock)
			log.Printf("[Waterlink] %v: %v", ErrDisconnected, err)
			return
		}
		c.dispatch(data)
	}
}

func (c *Connection) markClosed(sock *websocket.Conn) {
	c.mu.Lock()
	if c.socket == sock {
		c.open = false
	}
	c.mu.Unlock()
	sock.Close()
}

// dispatch routes one decoded frame by its op tag. Unknown tags are
// dropped.
func (c *Connection) dispatch(data []byte) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("[Waterlink] dropping undecodable frame: %v", err)
		return
	}

	switch msg.Op {
	case "stats":
		var st Stats
		if err := json.Unmarshal(data, &st); err != nil {
			return
		}
		c.mu.Lock()
		c.stats = st
		c.mu.Unlock()

	case "playerUpdate":
		if msg.State == nil || msg.State.Position == nil {
			return
		}
		if p := c.lookup(msg.GuildID); p != nil {
			p.updatePosition(*msg.State.Position, msg.State.Time)
		}

	case "event":
		p := c.lookup(msg.GuildID)
		if p == nil {
			return
		}
		// Each event runs on its own goroutine so a slow handler cannot
		// stall decoding of subsequent frames.
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Waterlink] event handler panic (guild %s): %v", msg.GuildID, r)
				}
			}()
			p.handleEvent(msg)
		}()
	}
}

// lookup finds an existing player by wire guild id. It never creates one;
// frames for unknown guilds are dropped.
func (c *Connection) lookup(guildID string) *Player {
	id, err := ParseSnowflake(guildID)
	if err != nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.players[id]
}

// reconcileLoop watches Discord shard health while the socket lives. Each
// connected player's voice traffic rides one gateway shard which can die
// independently of the node socket; when a dead shard comes back this loop
// schedules reconnects for the players stranded on it.
func (c *Connection) reconcileLoop(done chan struct{}) {
	ticker := time.NewTicker(c.ReconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if !c.Connected() {
				return
			}
			c.reconcile()
		}
	}
}

func (c *Connection) reconcile() {
	c.mu.Lock()
	shardCount := c.shardCount
	players := make([]*Player, 0, len(c.players))
	for _, p := range c.players {
		players = append(players, p)
	}
	c.mu.Unlock()

	byShard := make(map[int][]*Player)
	for _, p := range players {
		if !p.Connected() {
			continue
		}
		shard := shardID(p.guildID, shardCount)
		byShard[shard] = append(byShard[shard], p)
	}

	for shard, affected := range byShard {
		if !c.gw.ShardOpen(shard) {
			c.mu.Lock()
			already := c.down[shard]
			c.down[shard] = true
			c.mu.Unlock()
			if !already {
				log.Printf("[Reconcile] shard %d is down (%d player(s) affected)", shard, len(affected))
			}
			continue
		}

		c.mu.Lock()
		wasDown := c.down[shard]
		delete(c.down, shard)
		c.mu.Unlock()

		if wasDown {
			log.Printf("[Reconcile] shard %d is back, scheduling reconnect of %d player(s)", shard, len(affected))
			name := fmt.Sprintf("shard-reconnect:%d", shard)
			players := affected
			if err := c.jobs.Start(name, func(ctx context.Context) error {
				return c.reconnectPlayers(ctx, players)
			}); err != nil {
				log.Printf("[Reconcile] %v", err)
			}
		}
	}
}

// reconnectPlayers re-issues voice connects for players stranded by a shard
// outage. It waits out the settle window first: voice session state is not
// trustworthy until the shard has finished its READY/RESUMED exchange. The
// connects are paced to stay under the gateway's voice-state rate limit.
func (c *Connection) reconnectPlayers(ctx context.Context, players []*Player) error {
	select {
	case <-time.After(c.SettleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	lim := rate.NewLimiter(rate.Every(c.ReconnectPace), 1)
	for _, p := range players {
		if err := lim.Wait(ctx); err != nil {
			return err
		}
		if err := p.Connect(p.ChannelID()); err != nil {
			log.Printf("[Reconcile] reconnect guild %d: %v", p.guildID, err)
		}
	}
	return nil
}

// disconnected exposes the current socket's termination signal, or nil when
// no socket was ever opened.
func (c *Connection) disconnected() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// shardID computes Discord's canonical shard assignment for a guild.
func shardID(guildID int64, shardCount int) int {
	if shardCount <= 0 {
		return 0
	}
	return int((guildID >> 22) % int64(shardCount))
}

// ParseSnowflake parses a decimal Discord snowflake. Non-decimal input is
// rejected with ErrInvalidGuildID.
func ParseSnowflake(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGuildID, id)
	}
	return n, nil
}
