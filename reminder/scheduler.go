package reminder

import (
	"sync"
	"time"

	"github.com/nraghuveer/lc-status/lc_api"
	"github.com/sirupsen/logrus"
)

type Refresher interface {
	RefreshAll()
}

// Scheduler refreshes once on Start and then on every tick.
type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	log       logrus.FieldLogger
	ticker    *time.Ticker
	done      chan struct{}
	stopOnce  sync.Once
}

func NewScheduler(refresher Refresher, interval time.Duration, log logrus.FieldLogger) *Scheduler {
	if interval <= 0 {
		interval = lc_api.DefaultRefreshInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		log:       log.WithField("component", "scheduler"),
		done:      make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.log.WithField("interval", s.interval).Info("starting scheduler")
	s.ticker = time.NewTicker(s.interval)
	s.refresher.RefreshAll()

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.log.Debug("periodic refresh")
				s.refresher.RefreshAll()
			case <-s.done:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.ticker != nil {
			s.ticker.Stop()
		}
		s.log.Info("scheduler stopped")
	})
}
