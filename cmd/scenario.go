package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/concierge/internal/adapters/render/status"
	"github.com/bnema/concierge/internal/application"
	"github.com/bnema/concierge/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type scenarioFlags struct {
	sessionOptions
	asJSON        bool
	acceptPending bool
}

type scenarioStep struct {
	scenario domain.Scenario
	start    func(*application.Director) error
}

var (
	planningStep = scenarioStep{scenario: domain.ScenarioPlanning, start: (*application.Director).StartPlanning}
	voiceStep    = scenarioStep{scenario: domain.ScenarioVoice, start: (*application.Director).StartVoiceDemo}
)

type scenarioOutput struct {
	Session  domain.Session
	Overview application.Overview
}

func newPlanCmd(app *app) *cobra.Command {
	return newScenarioCmd(app, "plan", "Run the trip planning scenario", planningStep)
}

func newVoiceCmd(app *app) *cobra.Command {
	return newScenarioCmd(app, "voice", "Run the voice update scenario and the proactive alert", voiceStep)
}

func newDemoCmd(app *app) *cobra.Command {
	return newScenarioCmd(app, "demo", "Run trip planning, then the voice scenario", planningStep, voiceStep)
}

func newScenarioCmd(app *app, use, short string, steps ...scenarioStep) *cobra.Command {
	var flags scenarioFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(flags.sessionOptions)
			if err != nil {
				return err
			}

			if err := runScenarios(cmd.Context(), s, steps); err != nil {
				return err
			}

			if flags.acceptPending {
				for _, memory := range s.director.Snapshot().Pending {
					s.director.AcceptMemory(memory.ID)
				}
			}

			return writeScenarioOutput(cmd, app, s, flags.asJSON)
		},
	}

	addSessionFlags(cmd, &flags.sessionOptions)
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print the session snapshot and overview as JSON")
	cmd.Flags().BoolVar(&flags.acceptPending, "accept-pending", false, "Accept every pending memory once the run ends")

	return cmd
}

func addSessionFlags(cmd *cobra.Command, opts *sessionOptions) {
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Locale (zh or en); defaults to the configured locale")
	cmd.Flags().Float64Var(&opts.speed, "speed", 0, "Divide every scripted delay by this factor")
	cmd.Flags().BoolVar(&opts.instant, "instant", false, "Run on virtual time instead of waiting")
}

// runScenarios runs each step to completion in order. Instant sessions are
// drained on their fake clock; otherwise the director runs in real time.
func runScenarios(ctx context.Context, s *session, steps []scenarioStep) error {
	if s.fake != nil {
		for _, step := range steps {
			if err := step.start(s.director); err != nil {
				return err
			}
			application.Drain(s.director, s.fake)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.director.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		for _, step := range steps {
			if err := step.start(s.director); err != nil {
				return err
			}
			if err := waitFinished(gctx, s, step.scenario); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

func waitFinished(ctx context.Context, s *session, scenario domain.Scenario) error {
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for %s: %w", scenario, ctx.Err())
		case finished := <-s.finished:
			if finished == scenario {
				return nil
			}
		}
	}
}

func writeScenarioOutput(cmd *cobra.Command, app *app, s *session, asJSON bool) error {
	snapshot := s.director.Snapshot()
	overview := s.director.Overview()

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(scenarioOutput{Session: snapshot, Overview: overview})
	}

	rendered, err := app.statusRenderer(overview, snapshot, app.renderOptions(s))
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", statusadapter.RenderTranscript(snapshot.Messages), rendered)
	return err
}
