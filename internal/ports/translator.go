package ports

import "github.com/bnema/concierge/internal/domain"

// Translator resolves dotted keys against the active locale table.
type Translator interface {
	Locale() domain.Locale
	SetLocale(locale domain.Locale) error
	Resolve(key string) string
	Lookup(key string) (any, bool)
}
