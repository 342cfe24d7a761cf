package application

import (
	"time"

	"github.com/bnema/concierge/internal/domain"
	"go.uber.org/zap"
)

// StartPlanning runs the trip planning scenario: the client confirms the
// trip, the concierge reads the dossier, then every agent contributes one
// checklist item on a staggered schedule. It returns ErrScenarioRunning if a
// planning run is already in flight.
func (d *Director) StartPlanning() error {
	var err error
	d.do(func() { err = d.startPlanningLocked() })
	return err
}

func (d *Director) startPlanningLocked() error {
	if d.running[domain.ScenarioPlanning] {
		return d.rejectStart(domain.ScenarioPlanning)
	}

	gen := d.generation
	d.begin(domain.ScenarioPlanning)
	d.updateView(func(v *domain.View) { v.Processing = true })
	d.post(domain.RoleUser, format(d.t("demo.confirmTrip"), map[string]string{
		"destination": d.session.Form.Destination,
	}))

	d.schedule(gen, d.timings.ReadDelay, func() {
		d.post(domain.RoleAI, d.t("demo.readingMemory"))

		ids := domain.AgentIDs()
		remaining := len(ids)
		for i, id := range ids {
			offset := time.Duration(i)*d.timings.AgentStep + d.jitter(d.timings.AgentJitter)
			d.logger.Debug("agent scheduled",
				zap.String("session_id", d.session.ID),
				zap.String("agent", string(id)),
				zap.Duration("offset", offset),
			)

			d.schedule(gen, offset, func() {
				d.setAgent(id, domain.AgentWorking, d.t("demo.readingProfile"))
				d.addTask(id, domain.TaskItem{Kind: domain.TaskCheckbox, Label: d.planningTaskLabel(id), Checked: true})
				d.setAgent(id, domain.AgentDone, d.t("demo.memoryMatched"))

				remaining--
				if remaining == 0 {
					d.updateView(func(v *domain.View) { v.Processing = false })
					d.finish(domain.ScenarioPlanning)
				}
			})
		}
	})

	return nil
}

func (d *Director) planningTaskLabel(id domain.AgentID) string {
	switch id {
	case domain.AgentLifestyle:
		return d.t("demo.lifestyleTask")
	case domain.AgentAccess:
		return d.t("demo.accessTask")
	default:
		return d.t("demo.defaultTask")
	}
}
