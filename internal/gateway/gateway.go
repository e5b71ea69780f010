// ABOUTME: Relay gateway connecting a transport session to the tool process
// ABOUTME: Explicit connection state machine with reconnect and backoff
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/feedlog/internal/logging"
)

// State is the gateway's connection state. Frames are relayed only in
// StateConnected.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Config holds the gateway settings.
type Config struct {
	RelayURL       string
	ToolCommand    string
	ToolArgs       []string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Jitter         float64

	// Dial overrides the transport; defaults to DialRelay.
	Dial DialFunc
}

// Gateway keeps the MCP tool process reachable through an unreliable
// long-lived transport. The spawned process survives transport drops; only
// the session is replaced.
type Gateway struct {
	cfg     Config
	dial    DialFunc
	backoff Backoff

	// onState is a test hook; set before Run.
	onState func(State)

	mu            sync.Mutex
	state         State
	proc          *Process
	pending       [][]byte
	lastRestart   time.Time
	restartStreak int
}

// New creates a gateway. Zero backoff settings get defaults.
func New(cfg Config) *Gateway {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = 30 * time.Second
	}

	dial := cfg.Dial
	if dial == nil {
		dial = DialRelay
	}

	return &Gateway{
		cfg:  cfg,
		dial: dial,
		backoff: Backoff{
			Initial: cfg.InitialBackoff,
			Max:     cfg.MaxBackoff,
			Jitter:  cfg.Jitter,
		},
	}
}

// OnStateChange registers a state observer. Must be set before Run.
func (g *Gateway) OnStateChange(fn func(State)) {
	g.onState = fn
}

// State returns the current connection state.
func (g *Gateway) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gateway) setState(s State) {
	g.mu.Lock()
	if g.state == s {
		g.mu.Unlock()
		return
	}
	g.state = s
	g.mu.Unlock()

	logging.Debug("gateway", "state -> %s", s)
	if g.onState != nil {
		g.onState(s)
	}
}

// Run drives the connect/relay/reconnect loop until ctx is canceled. The
// tool process is stopped on the way out.
func (g *Gateway) Run(ctx context.Context) error {
	if g.cfg.RelayURL == "" {
		return fmt.Errorf("relay URL required")
	}
	if g.cfg.ToolCommand == "" {
		return fmt.Errorf("tool command required")
	}

	defer func() {
		g.mu.Lock()
		proc := g.proc
		g.mu.Unlock()
		if proc != nil {
			proc.Stop()
		}
		g.setState(StateDisconnected)
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		g.setState(StateConnecting)
		conn, err := g.dial(ctx, g.cfg.RelayURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logging.Info("gateway", "dial %s failed: %v", g.cfg.RelayURL, err)
			g.setState(StateDisconnected)
			if !g.waitBackoff(ctx) {
				return nil
			}
			continue
		}

		g.backoff.Reset()

		if err := g.ensureProcess(); err != nil {
			logging.Info("gateway", "%v", err)
			_ = conn.Close()
			g.setState(StateDisconnected)
			if !g.waitBackoff(ctx) {
				return nil
			}
			continue
		}

		g.setState(StateConnected)
		session := uuid.NewString()[:8]
		logging.Info("gateway", "[%s] session established", session)

		err = g.relay(ctx, conn, session)
		_ = conn.Close()
		g.setState(StateDisconnected)

		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logging.Info("gateway", "[%s] session ended: %v", session, err)
		}
		if !g.waitBackoff(ctx) {
			return nil
		}
	}
}

// waitBackoff sleeps for the next backoff delay. Returns false on shutdown:
// cancellation must exit the wait promptly, not after it.
func (g *Gateway) waitBackoff(ctx context.Context) bool {
	d := g.backoff.Next()
	logging.Debug("gateway", "reconnecting in %s (attempt %d)", d, g.backoff.Attempts())

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (g *Gateway) ensureProcess() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ensureProcessLocked()
}

func (g *Gateway) ensureProcessLocked() error {
	if g.proc != nil && g.proc.Alive() {
		return nil
	}

	if g.proc != nil {
		if time.Since(g.lastRestart) < time.Second {
			g.restartStreak++
		} else {
			g.restartStreak = 1
		}
		if g.restartStreak > 3 {
			return &ProcessError{Err: fmt.Errorf("crashing repeatedly, holding off")}
		}
		logging.Info("gateway", "tool process died, restarting")
	}

	proc, err := StartProcess(g.cfg.ToolCommand, g.cfg.ToolArgs...)
	if err != nil {
		return &ProcessError{Err: err}
	}
	g.proc = proc
	g.lastRestart = time.Now()
	return nil
}

// sendToProcess forwards an inbound frame, restarting the tool process first
// if it died.
func (g *Gateway) sendToProcess(frame []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ensureProcessLocked(); err != nil {
		return err
	}
	return g.proc.Send(frame)
}

func (g *Gateway) currentProcess() *Process {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.proc
}

// relay pumps frames both ways until the session fails, the process cannot
// be kept alive, or ctx is canceled. A clean ctx exit returns nil.
func (g *Gateway) relay(ctx context.Context, conn Conn, session string) error {
	readErr := make(chan error, 1)

	// Inbound pump: transport -> tool process. Malformed frames are logged
	// and dropped; they never reach the process or kill the loop.
	go func() {
		for {
			data, err := conn.ReadMessage()
			if err != nil {
				readErr <- &TransportError{Err: err}
				return
			}

			frame := bytes.TrimSpace(data)
			if len(frame) == 0 {
				continue
			}
			if !json.Valid(frame) {
				logging.Info("gateway", "[%s] dropping malformed frame: %s", session, logging.Truncate(string(frame), 80))
				continue
			}

			if err := g.sendToProcess(frame); err != nil {
				readErr <- err
				return
			}
		}
	}()

	// Frames that could not be delivered on a previous session go out first.
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()

	for i, frame := range pending {
		if err := conn.WriteMessage(frame); err != nil {
			g.mu.Lock()
			g.pending = append(pending[i:], g.pending...)
			g.mu.Unlock()
			return &TransportError{Err: err}
		}
		logging.Debug("gateway", "[%s] delivered pending frame", session)
	}

	// Outbound pump: tool process -> transport.
	for {
		proc := g.currentProcess()

		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case frame, ok := <-proc.Output():
			if !ok {
				// Process exited. Restart it and resume on the same session.
				if err := g.ensureProcess(); err != nil {
					return err
				}
				continue
			}
			if err := conn.WriteMessage(frame); err != nil {
				// Keep the frame for the next session rather than lose a
				// response silently.
				g.mu.Lock()
				g.pending = append(g.pending, frame)
				g.mu.Unlock()
				return &TransportError{Err: err}
			}
		}
	}
}
