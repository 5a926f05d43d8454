// Package sync reconciles the local draft aggregate against persisted
// snapshots at startup and against the remote authority at runtime.
// Whenever an external source is present it wins outright: states are
// replaced wholesale, never merged.
package sync

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/golfdraft-io/golfdraft/internal/draft"
	"github.com/golfdraft-io/golfdraft/internal/snapshot"
)

// Store is the key-value persistence surface for snapshots and the
// completed-draft history.
type Store interface {
	SaveSnapshot(ctx context.Context, snap snapshot.Snapshot) error
	LoadSnapshot(ctx context.Context) (*snapshot.Snapshot, error)
	AppendHistory(ctx context.Context, entry snapshot.HistoryEntry) error
	LoadHistory(ctx context.Context) ([]snapshot.HistoryEntry, error)
}

// Authority is the remote source of truth. Once one is in play, local
// state is a replica: picks are forwarded outward and pushed states
// are applied inbound, last push wins.
type Authority interface {
	FetchDraft(ctx context.Context) (*snapshot.RemoteDraft, error)
	Connect(ctx context.Context) error
	SubmitPick(ctx context.Context, teamID, playerID string) error
	Pushes() <-chan snapshot.RemoteDraft
}

const persistTimeout = 3 * time.Second

// Coordinator owns the live draft aggregate for the session. It wires
// the aggregate's hooks so that every mutation is persisted (while in
// local mode) and republished, and it swaps the aggregate wholesale
// when a snapshot restore or remote push arrives.
type Coordinator struct {
	mu           sync.Mutex
	draft        *draft.Draft
	synchronized bool

	store     Store     // nil disables persistence
	authority Authority // nil means local-only mode
	logger    *logrus.Logger

	// OnStatus receives transient user-facing messages; OnState fires
	// after every state change or wholesale replacement. Both must be
	// assigned before Start, which spawns the push watcher.
	OnStatus func(msg string)
	OnState  func()
}

// NewCoordinator takes ownership of d and wires its hooks.
func NewCoordinator(d *draft.Draft, st Store, auth Authority, logger *logrus.Logger) *Coordinator {
	c := &Coordinator{
		store:     st,
		authority: auth,
		logger:    logger,
	}
	c.wire(d)
	c.draft = d
	return c
}

// Draft returns the current aggregate. Callers must not cache it
// across operations: a push may replace it at any time.
func (c *Coordinator) Draft() *draft.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Synchronized reports whether a remote authority owns the state.
func (c *Coordinator) Synchronized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.synchronized
}

// Start restores persisted state and, when a remote authority is
// configured, fetches and applies its draft before interaction
// handlers attach. Every failure path degrades to the last known good
// state: a missing or invalid snapshot means a fresh draft, a failed
// fetch means local-only mode.
func (c *Coordinator) Start(ctx context.Context) {
	if c.store != nil {
		snap, err := c.store.LoadSnapshot(ctx)
		if err != nil {
			c.logger.Warnf("Failed to read persisted snapshot: %v. Starting fresh.", err)
		} else if snap != nil {
			restored, err := snapshot.Decode(*snap)
			if err != nil {
				c.logger.Warnf("Persisted snapshot is unusable: %v. Starting fresh.", err)
			} else {
				c.install(restored, false)
				c.logger.Info("Restored draft state from persisted snapshot.")
			}
		}
	}

	if c.authority == nil {
		return
	}

	rd, err := c.authority.FetchDraft(ctx)
	if err != nil {
		c.logger.Warnf("Remote draft fetch failed: %v. Running in local-only mode.", err)
		return
	}
	snap, err := snapshot.NormalizeRemote(rd)
	if err != nil {
		c.logger.Warnf("Remote draft payload rejected: %v. Running in local-only mode.", err)
		return
	}
	remote, err := snapshot.Decode(snap)
	if err != nil {
		c.logger.Warnf("Normalized remote draft failed to decode: %v. Running in local-only mode.", err)
		return
	}
	if err := c.authority.Connect(ctx); err != nil {
		c.logger.Warnf("Remote event channel connect failed: %v. Running in local-only mode.", err)
		return
	}

	c.install(remote, true)
	c.mu.Lock()
	c.synchronized = true
	c.mu.Unlock()
	c.logger.Info("Remote draft applied; local persistence suspended while server-synchronized.")

	go c.watchPushes(ctx)
}

// SubmitPick routes a pick either into the local aggregate or, in
// server-synchronized mode, out to the authority on behalf of the team
// currently on the clock.
func (c *Coordinator) SubmitPick(ctx context.Context, playerID string) {
	c.mu.Lock()
	d := c.draft
	synced := c.synchronized
	c.mu.Unlock()

	if !synced {
		d.SubmitPick(playerID)
		return
	}

	teamID := strconv.Itoa(d.CurrentTeam())
	if err := c.authority.SubmitPick(ctx, teamID, playerID); err != nil {
		c.logger.Warnf("Forwarding pick %q failed: %v", playerID, err)
		c.status("Could not reach the draft server. Pick not submitted.")
	}
}

// History returns the archived completed drafts, most recent first.
func (c *Coordinator) History(ctx context.Context) []snapshot.HistoryEntry {
	if c.store == nil {
		return nil
	}
	entries, err := c.store.LoadHistory(ctx)
	if err != nil {
		c.logger.Warnf("Failed to load draft history: %v", err)
		return nil
	}
	return entries
}

// watchPushes applies inbound full-state pushes until the context
// ends. A malformed push is logged and skipped whole.
func (c *Coordinator) watchPushes(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rd, ok := <-c.authority.Pushes():
			if !ok {
				return
			}
			snap, err := snapshot.NormalizeRemote(&rd)
			if err != nil {
				c.logger.Warnf("Dropping malformed remote push: %v", err)
				continue
			}
			replacement, err := snapshot.Decode(snap)
			if err != nil {
				c.logger.Warnf("Dropping undecodable remote push: %v", err)
				continue
			}
			c.install(replacement, true)
			c.logger.Debug("Applied remote draft push.")
		}
	}
}

// install swaps in a replacement aggregate and rewires its hooks. When
// the replacement arrived from the remote authority and crosses the
// completion boundary, the finished draft is archived exactly once.
func (c *Coordinator) install(d *draft.Draft, fromRemote bool) {
	// Hooks must be attached before the aggregate becomes reachable
	// through Draft(); a caller that grabs it mid-install would
	// otherwise race the hook writes and drop announcements.
	c.wire(d)

	c.mu.Lock()
	prev := c.draft
	c.draft = d
	c.mu.Unlock()

	if fromRemote && prev != nil && !lifecycleCompleted(prev) && lifecycleCompleted(d) {
		c.archive(d)
	}
	if c.OnState != nil {
		c.OnState()
	}
}

func lifecycleCompleted(d *draft.Draft) bool {
	d.Mu.Lock()
	defer d.Mu.Unlock()
	return d.HasCompleted
}

// wire attaches persistence, broadcast and archive hooks to an
// aggregate. Hooks fire outside the draft lock.
func (c *Coordinator) wire(d *draft.Draft) {
	d.AnnounceFn = c.status
	d.OnChange = func() {
		c.persist(d)
		if c.OnState != nil {
			c.OnState()
		}
	}
	d.OnComplete = func() {
		c.archive(d)
	}
}

// persist serializes and stores the current state, fire-and-forget:
// failures are logged and swallowed, never surfaced or retried. Writes
// are suspended entirely while a remote authority is in play.
func (c *Coordinator) persist(d *draft.Draft) {
	c.mu.Lock()
	suspended := c.synchronized
	c.mu.Unlock()
	if suspended || c.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := c.store.SaveSnapshot(ctx, snapshot.Encode(d)); err != nil {
		c.logger.Warnf("Snapshot write skipped: %v", err)
	}
}

// archive appends a completed draft to the bounded history.
func (c *Coordinator) archive(d *draft.Draft) {
	if c.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := c.store.AppendHistory(ctx, snapshot.BuildHistoryEntry(d)); err != nil {
		c.logger.Warnf("History append failed: %v", err)
	}
}

func (c *Coordinator) status(msg string) {
	if msg != "" && c.OnStatus != nil {
		c.OnStatus(msg)
	}
}
