package application

import (
	"github.com/bnema/concierge/internal/domain"
	"github.com/bnema/concierge/internal/ports"
)

// StartVoiceDemo runs the voice scenario: a spoken dietary change updates the
// lifestyle agent, proposes a memory for review, walks through the review
// and status overview, and ends with the proactive flight alert. The run
// counts as in flight until the alert is resolved.
func (d *Director) StartVoiceDemo() error {
	var err error
	d.do(func() { err = d.startVoiceLocked() })
	return err
}

func (d *Director) startVoiceLocked() error {
	if d.running[domain.ScenarioVoice] {
		return d.rejectStart(domain.ScenarioVoice)
	}

	gen := d.generation
	d.begin(domain.ScenarioVoice)
	d.updateView(func(v *domain.View) { v.Listening = true })

	d.schedule(gen, d.timings.ListenDuration, func() {
		d.updateView(func(v *domain.View) { v.Listening = false })
		d.post(domain.RoleUser, d.t("demo.voiceText"))
		d.updateView(func(v *domain.View) { v.Processing = true })
		d.setAgent(domain.AgentLifestyle, domain.AgentWorking, d.t("demo.analyzingDiet"))

		d.schedule(gen, d.timings.AnalyzeDelay, func() {
			d.addTask(domain.AgentLifestyle, domain.TaskItem{Kind: domain.TaskAlert, Label: d.t("demo.dietAdjust"), Checked: true})
			d.setAgent(domain.AgentLifestyle, domain.AgentDone, d.t("demo.updateDone"))
			d.proposeMemory(domain.Memory{
				Type:         "habit",
				Content:      d.t("demo.newMemoryContent"),
				SourceAgent:  domain.AgentLifestyle,
				CreatedLabel: d.t("demo.justNow"),
				IsNew:        true,
			})
			d.updateView(func(v *domain.View) { v.Processing = false })
			d.post(domain.RoleAI, d.t("demo.voiceResult"))

			d.schedule(gen, d.timings.ReviewDelay, func() {
				d.updateView(func(v *domain.View) {
					v.SelectedAgent = domain.AgentLifestyle
					v.ActiveTab = domain.TabMemory
				})
			})

			d.schedule(gen, d.timings.SummaryDelay, func() {
				d.updateView(func(v *domain.View) { v.SelectedAgent = "" })
				d.post(domain.RoleAI, d.t("demo.statusSummaryMsg"))

				d.schedule(gen, d.timings.OverviewDelay, func() {
					d.updateView(func(v *domain.View) { v.ShowOverview = true })
				})
				d.schedule(gen, d.timings.AlertDelay, func() {
					d.updateView(func(v *domain.View) { v.ShowOverview = false })
					d.raiseProactiveAlert(gen)
				})
			})
		})
	})

	return nil
}

// raiseProactiveAlert shows the flight-change banner and lets the access
// agent rebook. Completing it also completes the voice run.
func (d *Director) raiseProactiveAlert(gen ports.RunToken) {
	d.begin(domain.ScenarioAlert)
	d.updateView(func(v *domain.View) { v.ShowAlert = true })
	d.post(domain.RoleSystem, d.t("alert.title")+": "+d.t("alert.flightChange"))
	d.setAgent(domain.AgentAccess, domain.AgentWorking, d.t("alert.rebooking"))

	d.schedule(gen, d.timings.ResolveDelay, func() {
		d.addTask(domain.AgentAccess, domain.TaskItem{Kind: domain.TaskAlert, Label: d.t("alert.newFlight"), Checked: true})
		d.setAgent(domain.AgentAccess, domain.AgentDone, d.t("alert.solved"))
		d.finish(domain.ScenarioAlert)
		d.finish(domain.ScenarioVoice)
	})
}
