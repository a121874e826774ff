package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"FishSentinel/internal/availability"
	"FishSentinel/internal/catalog"
	"FishSentinel/internal/clock"
	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/model"
	"FishSentinel/internal/notifier"
	"FishSentinel/internal/prefs"
	"FishSentinel/internal/recorder"
	"FishSentinel/internal/zone"

	"github.com/robfig/cron/v3"
)

// Sender delivers notifications. A nil Sender disables them.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler drives the periodic evaluation tick and catalog reloads, and
// answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Catalog  *catalog.Catalog
	Engine   *availability.Engine
	Zones    *zone.Resolver
	Prefs    *prefs.Store
	Notifier Sender
	Recorder recorder.Recorder
	Clock    clock.Clock
	Ctx      context.Context

	mu   sync.Mutex
	last map[string]model.State // pinned fish key -> state at previous tick
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, cat *catalog.Catalog, eng *availability.Engine, zones *zone.Resolver,
	store *prefs.Store, sender Sender, rec recorder.Recorder, clk clock.Clock) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Catalog:  cat,
		Engine:   eng,
		Zones:    zones,
		Prefs:    store,
		Notifier: sender,
		Recorder: rec,
		Clock:    clk,
		Ctx:      ctx,
		last:     make(map[string]model.State),
	}
}

// RegisterAll registers the evaluation tick and the catalog reload.
func (s *Scheduler) RegisterAll(tickCron, reloadCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.Tick); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	if _, err := s.Cron.AddFunc(reloadCron, func() { s.Reload() }); err != nil {
		return fmt.Errorf("register reload task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Reload refreshes the catalog and records the attempt.
func (s *Scheduler) Reload() error {
	snap, err := s.Catalog.Reload()
	evt := &recorder.ReloadEvent{Source: snap.Source, Fish: snap.Fish, Spots: snap.Spots}
	if err != nil {
		log.Printf("[ERROR] catalog reload: %v", err)
		evt.Err = err.Error()
	} else {
		log.Printf("[INFO] catalog reloaded from %s: %d fish, %d spots", snap.Source, snap.Fish, snap.Spots)
	}
	if recErr := s.Recorder.RecordReload(evt); recErr != nil {
		log.Printf("[ERROR] record reload: %v", recErr)
	}
	return err
}

// Tick evaluates every pinned fish, records state changes and alerts when
// a fish becomes catchable.
func (s *Scheduler) Tick() {
	now := s.Clock.Now()
	ts := eorzea.Now(now)
	pinned := s.Prefs.Pinned()

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(pinned))
	for _, key := range pinned {
		f, ok := s.Catalog.Find(key)
		if !ok {
			continue
		}
		seen[key] = true
		cd := s.Engine.Evaluate(f, now)
		prev, known := s.last[key]
		s.last[key] = cd.State
		if !known || prev == cd.State {
			continue
		}

		log.Printf("[INFO] %s: %s -> %s at ET %s", f.Name, prev, cd.State, ts)
		if err := s.Recorder.RecordTransition(&recorder.TransitionEvent{
			Fish:       f.Name,
			Zone:       cd.Zone,
			From:       prev,
			To:         cd.State,
			Remaining:  cd.Remaining,
			EorzeaTime: ts.String(),
		}); err != nil {
			log.Printf("[ERROR] record transition: %v", err)
		}
		if cd.Active() && !prev.Active() {
			s.trySend(notifier.FormatWindowOpened(f, cd))
		}
	}
	for key := range s.last {
		if !seen[key] {
			delete(s.last, key)
		}
	}
}

// HandleCommand processes a user command and returns a reply. Plain chat
// text that is not a command gets no reply.
func (s *Scheduler) HandleCommand(command string) string {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(command), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/now", "时间":
		return s.clockReply()
	case "/list", "列表":
		return s.listReply()
	case "/fish", "查鱼":
		return s.fishReply(arg)
	case "/weather", "天气":
		return s.weatherReply(arg)
	case "/pin", "置顶":
		return s.pinReply(arg)
	case "/done", "完成":
		return s.doneReply(arg)
	case "/loot", "战利品":
		return s.lootReply(arg)
	default:
		if !strings.HasPrefix(cmd, "/") {
			return ""
		}
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
