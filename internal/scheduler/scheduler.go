package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"concierge/infras/otel"
	"concierge/shared/constant"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler is an in-process one-shot timer registry. Keys are convention
// "<booking_id>:<kind>" so everything armed for a booking can be dropped in
// one call when the booking changes. Timers do not survive a restart; armed
// reminders are also persisted by the booking service and could be re-armed
// at boot from the reminders table.
type Scheduler interface {
	Schedule(key string, fireAt time.Time, task func(ctx context.Context))
	Cancel(key string)
	CancelByPrefix(prefix string)
	Shutdown()
}

type schedulerImpl struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	otel   otel.Otel
}

func New(otl otel.Otel) Scheduler {
	return &schedulerImpl{
		timers: make(map[string]*time.Timer),
		otel:   otl,
	}
}

// Schedule arms a timer under key, replacing any timer already armed under
// the same key.
func (s *schedulerImpl) Schedule(key string, fireAt time.Time, task func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[key]; ok {
		existing.Stop()
	}

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	s.timers[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()

		defer func() {
			if r := recover(); r != nil {
				log.Error().Any("panic", r).Str("key", key).Msg("scheduled task panicked")
			}
		}()

		ctx, scope := s.otel.NewScope(context.Background(), constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".fire")
		defer scope.End()

		scope.SetAttribute("key", key)

		task(ctx)
	})

	log.Debug().Str("key", key).Time("fireAt", fireAt).Msg("scheduled one-shot task")
}

func (s *schedulerImpl) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}
}

func (s *schedulerImpl) CancelByPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timer := range s.timers {
		if strings.HasPrefix(key, prefix) {
			timer.Stop()
			delete(s.timers, key)
		}
	}
}

func (s *schedulerImpl) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}
