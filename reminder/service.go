package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nraghuveer/lc-status/lc_api"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var ErrEmptyUsername = errors.New("username is empty")

// UsernameStore persists the tracked username between runs.
type UsernameStore interface {
	LoadUsername() (string, error)
	SaveUsername(username string) error
}

type AvatarFetcher interface {
	FetchAvatar(ctx context.Context, url string) (*lc_api.Avatar, error)
}

// Service fans out the three LeetCode queries and folds their results into a Store.
type Service struct {
	api     lc_api.Executor
	avatars AvatarFetcher
	names   UsernameStore
	store   *Store
	log     logrus.FieldLogger
	now     func() time.Time
	loc     *time.Location
	limiter *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Service)

func WithAvatarFetcher(f AvatarFetcher) Option {
	return func(s *Service) { s.avatars = f }
}

func WithUsernameStore(names UsernameStore) Option {
	return func(s *Service) { s.names = names }
}

func WithStore(store *Store) Option {
	return func(s *Service) { s.store = store }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithRefreshCooldown drops RefreshAll calls arriving sooner than d after the
// previous accepted one. Zero disables the check.
func WithRefreshCooldown(d time.Duration) Option {
	return func(s *Service) {
		if d <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

func NewService(api lc_api.Executor, opts ...Option) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		api:     api,
		store:   NewStore(),
		log:     logrus.StandardLogger(),
		now:     time.Now,
		loc:     time.Local,
		limiter: rate.NewLimiter(rate.Every(lc_api.DefaultRefreshCooldown), 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Store() *Store { return s.store }

func (s *Service) Username() string { return s.store.username() }

// Load restores the persisted username, falling back to fallback when none
// was saved. It does not refresh.
func (s *Service) Load(fallback string) error {
	username := strings.TrimSpace(fallback)
	if s.names != nil {
		saved, err := s.names.LoadUsername()
		if err != nil {
			return fmt.Errorf("load username: %w", err)
		}
		if saved != "" {
			username = saved
		}
	}
	s.store.reset(username)
	return nil
}

// SetUsername clears everything fetched for the previous user, persists the
// new name and refreshes. The switch happens even if persisting fails.
func (s *Service) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	s.store.reset(username)
	s.log.WithField("username", username).Info("tracking user")

	var err error
	if s.names != nil {
		if err = s.names.SaveUsername(username); err != nil {
			s.log.WithError(err).Warn("failed to persist username")
			err = fmt.Errorf("save username: %w", err)
		}
	}
	s.refresh()
	return err
}

// RefreshAll starts a fetch cycle and returns immediately. Calls within the
// cooldown of the previous one are dropped.
func (s *Service) RefreshAll() {
	if s.Username() == "" {
		return
	}
	if !s.limiter.Allow() {
		s.log.Debug("refresh dropped, too soon after the previous one")
		return
	}
	s.refresh()
}

func (s *Service) refresh() {
	if err := s.startCycle(); err != nil && !errors.Is(err, ErrEmptyUsername) {
		s.log.WithError(err).Error("refresh failed to start")
	}
}

func (s *Service) startCycle() error {
	cycle, username, ok := s.store.startCycle()
	if !ok {
		return ErrEmptyUsername
	}
	log := s.log.WithFields(logrus.Fields{"cycle": cycle.String(), "username": username})
	log.Debug("refresh started")

	s.wg.Add(queriesPerCycle)
	go s.fetchProfile(cycle, username, log)
	go s.fetchDailyChallenge(cycle, log)
	go s.fetchStatus(cycle, username, log)
	return nil
}

func (s *Service) fetchProfile(cycle xid.ID, username string, log logrus.FieldLogger) {
	defer s.wg.Done()
	profile, err := lc_api.FetchProfile(s.ctx, s.api, username)
	if err != nil {
		s.fail(cycle, err, log)
		return
	}
	if profile == nil {
		log.Warn("user not found")
		s.store.finish(cycle, nil)
		return
	}
	applied := s.store.finish(cycle, func(snap *Snapshot) { snap.Profile = profile })
	if applied && profile.AvatarURL != "" && s.avatars != nil {
		s.wg.Add(1)
		go s.fetchAvatar(cycle, profile.AvatarURL, log)
	}
}

func (s *Service) fetchDailyChallenge(cycle xid.ID, log logrus.FieldLogger) {
	defer s.wg.Done()
	daily, err := lc_api.FetchDailyChallenge(s.ctx, s.api)
	if err != nil {
		s.fail(cycle, err, log)
		return
	}
	if daily == nil {
		log.Info("no active daily challenge")
		s.store.finish(cycle, nil)
		return
	}
	s.store.finish(cycle, func(snap *Snapshot) { snap.Daily = daily })
}

func (s *Service) fetchStatus(cycle xid.ID, username string, log logrus.FieldLogger) {
	defer s.wg.Done()
	report, err := lc_api.FetchStatus(s.ctx, s.api, username)
	if err != nil {
		s.fail(cycle, err, log)
		return
	}
	s.store.finish(cycle, func(snap *Snapshot) {
		// Uses whichever daily challenge is stored right now.
		var dailySlug string
		if snap.Daily != nil {
			dailySlug = snap.Daily.TitleSlug
		}
		status := DeriveStatus(report.Submissions, dailySlug, report.TotalSolved, report.Streak, s.now(), s.loc)
		snap.Status = &status
	})
}

func (s *Service) fetchAvatar(cycle xid.ID, url string, log logrus.FieldLogger) {
	defer s.wg.Done()
	avatar, err := s.avatars.FetchAvatar(s.ctx, url)
	if err != nil {
		log.WithError(err).Debug("avatar download failed")
		return
	}
	s.store.apply(cycle, func(snap *Snapshot) { snap.Avatar = avatar })
}

func (s *Service) fail(cycle xid.ID, err error, log logrus.FieldLogger) {
	log.WithError(err).Warn("query failed")
	s.store.finish(cycle, func(snap *Snapshot) { snap.Err = err.Error() })
}

// Wait blocks until every request started so far has settled.
func (s *Service) Wait() { s.wg.Wait() }

// Close cancels in-flight requests and waits for them.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}
