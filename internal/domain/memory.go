package domain

type MemoryID int64

// Memory is a fact about the client surfaced by an agent.
type Memory struct {
	ID           MemoryID
	Type         string
	Content      string
	SourceAgent  AgentID
	CreatedLabel string
	IsNew        bool
}

func indexOfMemory(memories []Memory, id MemoryID) int {
	for i, memory := range memories {
		if memory.ID == id {
			return i
		}
	}
	return -1
}

func removeMemoryAt(memories []Memory, i int) []Memory {
	out := make([]Memory, 0, len(memories)-1)
	out = append(out, memories[:i]...)
	return append(out, memories[i+1:]...)
}

func prependMemory(memories []Memory, memory Memory) []Memory {
	out := make([]Memory, 0, len(memories)+1)
	out = append(out, memory)
	return append(out, memories...)
}
