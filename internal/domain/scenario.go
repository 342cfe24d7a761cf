package domain

type Scenario string

const (
	ScenarioPlanning Scenario = "planning"
	ScenarioVoice    Scenario = "voice"
	ScenarioAlert    Scenario = "proactive_alert"
)
