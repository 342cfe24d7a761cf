package application

import (
	"github.com/bnema/concierge/internal/domain"
	"github.com/bnema/concierge/internal/ports"
)

// seedMemories decodes memories.initial from the active locale. Entries that
// are not tables are skipped.
func seedMemories(translator ports.Translator) []domain.Memory {
	value, ok := translator.Lookup("memories.initial")
	if !ok {
		return nil
	}
	entries, ok := value.([]any)
	if !ok {
		return nil
	}

	memories := make([]domain.Memory, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		memories = append(memories, domain.Memory{
			Type:         stringField(fields, "type"),
			Content:      stringField(fields, "content"),
			SourceAgent:  domain.AgentID(stringField(fields, "agent")),
			CreatedLabel: stringField(fields, "date"),
		})
	}
	return memories
}

func stringField(fields map[string]any, name string) string {
	text, _ := fields[name].(string)
	return text
}

func lookupStrings(translator ports.Translator, key string) []string {
	value, ok := translator.Lookup(key)
	if !ok {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := item.(string); ok {
			out = append(out, text)
		}
	}
	return out
}
