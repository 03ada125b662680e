// Package autosave debounces profile draft writes: each draft resets an idle
// timer and is saved once the editor has been quiet for the idle period.
package autosave

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/brandhub/core/internal/models"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/pkg/session"
	"go.uber.org/zap"
)

const DefaultIdle = 30 * time.Second

var ErrStopped = errors.New("autosave is shutting down")

// Saver persists a profile; *profile.Service satisfies it.
type Saver interface {
	Save(ctx context.Context, sess *session.Session, p *models.BusinessProfile) (*models.BusinessProfile, error)
}

type draft struct {
	profile *models.BusinessProfile
	sess    *session.Session
	timer   *time.Timer
	gen     uint64
}

type Debouncer struct {
	saver Saver
	idle  time.Duration
	log   *zap.Logger

	mu      sync.Mutex
	pending map[string]*draft
	gen     uint64
	stopped bool
	wg      sync.WaitGroup
}

func NewDebouncer(saver Saver, idle time.Duration, log *zap.Logger) *Debouncer {
	if idle <= 0 {
		idle = DefaultIdle
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Debouncer{
		saver:   saver,
		idle:    idle,
		log:     log,
		pending: make(map[string]*draft),
	}
}

// Idle is the quiet period before a draft is written.
func (d *Debouncer) Idle() time.Duration { return d.idle }

// Schedule records p as the pending draft for its id and restarts the timer.
// A newer draft replaces an older one.
func (d *Debouncer) Schedule(sess *session.Session, p *models.BusinessProfile) error {
	if strings.TrimSpace(p.ID) == "" {
		return profile.ErrNotFound
	}
	if strings.TrimSpace(p.BusinessName) == "" {
		return profile.ErrNameRequired
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}
	if prev, ok := d.pending[p.ID]; ok {
		prev.timer.Stop()
	}
	d.gen++
	id, gen := p.ID, d.gen
	d.pending[id] = &draft{
		profile: p,
		sess:    sess,
		gen:     gen,
		timer:   time.AfterFunc(d.idle, func() { d.fire(id, gen) }),
	}
	return nil
}

// Pending reports whether a draft for id is waiting to be saved.
func (d *Debouncer) Pending(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[id]
	return ok
}

func (d *Debouncer) fire(id string, gen uint64) {
	d.mu.Lock()
	entry, ok := d.pending[id]
	if !ok || entry.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, id)
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	d.save(context.Background(), entry)
}

func (d *Debouncer) save(ctx context.Context, entry *draft) {
	if _, err := d.saver.Save(ctx, entry.sess, entry.profile); err != nil {
		d.log.Error("autosave failed", zap.String("profile_id", entry.profile.ID), zap.Error(err))
		return
	}
	d.log.Debug("autosaved profile draft", zap.String("profile_id", entry.profile.ID))
}

// Stop rejects new drafts, saves every pending one immediately and waits for
// in-flight saves.
func (d *Debouncer) Stop(ctx context.Context) {
	d.mu.Lock()
	d.stopped = true
	entries := make([]*draft, 0, len(d.pending))
	for id, entry := range d.pending {
		entry.timer.Stop()
		entries = append(entries, entry)
		delete(d.pending, id)
	}
	d.mu.Unlock()

	for _, entry := range entries {
		d.save(ctx, entry)
	}
	d.wg.Wait()
}
