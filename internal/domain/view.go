package domain

type Tab string

const (
	TabProfile Tab = "profile"
	TabMemory  Tab = "memory"
	TabLogs    Tab = "logs"
)

func (t Tab) Valid() bool {
	switch t {
	case TabProfile, TabMemory, TabLogs:
		return true
	default:
		return false
	}
}

// View holds the presentation flags the scenarios drive. SelectedAgent is
// empty when no agent detail view is open.
type View struct {
	Processing    bool
	Listening     bool
	SelectedAgent AgentID
	ActiveTab     Tab
	ShowOverview  bool
	ShowAlert     bool
}
