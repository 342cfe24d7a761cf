package domain

type TaskKind string

const (
	TaskCheckbox TaskKind = "checkbox"
	TaskAlert    TaskKind = "alert"
)

type TaskItem struct {
	Kind    TaskKind
	Label   string
	Checked bool
}

// FormData is the travel checklist. Sections only gains a key once an agent
// contributes its first task.
type FormData struct {
	Destination string
	Duration    string
	Sections    map[AgentID][]TaskItem
}

func (f FormData) Tasks(id AgentID) []TaskItem {
	return f.Sections[id]
}

func (f FormData) TotalTasks() int {
	total := 0
	for _, items := range f.Sections {
		total += len(items)
	}
	return total
}

func (f FormData) CompletedTasks() int {
	completed := 0
	for _, items := range f.Sections {
		for _, item := range items {
			if item.Checked {
				completed++
			}
		}
	}
	return completed
}

func (f FormData) HasTasks() bool {
	return len(f.Sections) > 0
}

func (f FormData) clone() FormData {
	out := FormData{
		Destination: f.Destination,
		Duration:    f.Duration,
		Sections:    make(map[AgentID][]TaskItem, len(f.Sections)),
	}
	for id, items := range f.Sections {
		out.Sections[id] = append([]TaskItem(nil), items...)
	}
	return out
}
