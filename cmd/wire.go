package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bnema/concierge/internal/adapters/i18n"
	"github.com/bnema/concierge/internal/adapters/logging"
	statusadapter "github.com/bnema/concierge/internal/adapters/render/status"
	"github.com/bnema/concierge/internal/adapters/scheduler"
	"github.com/bnema/concierge/internal/application"
	"github.com/bnema/concierge/internal/config"
	"github.com/bnema/concierge/internal/domain"
	"github.com/bnema/concierge/internal/ports"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg            config.Config
	logger         *zap.Logger
	catalog        *i18n.Catalog
	statusRenderer func(application.Overview, domain.Session, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

type sessionOptions struct {
	locale  string
	speed   float64
	instant bool
}

// session bundles one director with the clock driving it. fake is set in
// instant mode only.
type session struct {
	director *application.Director
	resolver *i18n.Resolver
	clock    ports.Clock
	fake     clockwork.FakeClock
	finished chan domain.Scenario
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New(), os.Getenv("CONCIERGE_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	catalog, err := i18n.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load locale catalog: %w", err)
	}

	return &app{
		cfg:            cfg,
		logger:         logger,
		catalog:        catalog,
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

func (a *app) resolver(locale string) (*i18n.Resolver, error) {
	if locale == "" {
		locale = a.cfg.Locale
	}
	parsed, err := domain.ParseLocale(locale)
	if err != nil {
		return nil, err
	}
	return i18n.NewResolver(a.catalog, parsed)
}

func (a *app) newSession(opts sessionOptions) (*session, error) {
	resolver, err := a.resolver(opts.locale)
	if err != nil {
		return nil, err
	}

	speed := opts.speed
	switch {
	case speed < 0:
		return nil, fmt.Errorf("speed must be positive, got %v", speed)
	case speed == 0:
		speed = a.cfg.Speed
	}

	s := &session{
		resolver: resolver,
		finished: make(chan domain.Scenario, 8),
	}
	if opts.instant {
		s.fake = clockwork.NewFakeClockAt(a.now())
		s.clock = s.fake
	} else {
		s.clock = clockwork.NewRealClock()
	}

	s.director = application.NewDirector(resolver, scheduler.NewQueue(s.clock),
		application.WithClock(s.clock),
		application.WithLogger(a.logger),
		application.WithTimings(application.Timings(a.cfg.Timings).Scale(speed)),
		application.WithDestination(a.cfg.Destination),
	)
	s.director.Subscribe(func(e domain.Event) {
		if e.Kind != domain.EventScenarioFinished {
			return
		}
		select {
		case s.finished <- e.Scenario:
		default:
		}
	})

	return s, nil
}

func (a *app) renderOptions(s *session) statusadapter.RenderOptions {
	return statusadapter.RenderOptions{
		Now: s.clock.Now(),
		T:   s.resolver.Resolve,
	}
}
