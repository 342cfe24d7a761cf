package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/concierge/internal/domain"
	"github.com/bnema/concierge/internal/ports"
)

type Resolver struct {
	catalog *Catalog

	mu     sync.RWMutex
	locale domain.Locale
}

var _ ports.Translator = (*Resolver)(nil)

func NewResolver(catalog *Catalog, locale domain.Locale) (*Resolver, error) {
	r := &Resolver{catalog: catalog}
	if err := r.SetLocale(locale); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolver) Locale() domain.Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locale
}

func (r *Resolver) SetLocale(locale domain.Locale) error {
	if _, ok := r.catalog.Table(locale); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedLocale, locale)
	}

	r.mu.Lock()
	r.locale = locale
	r.mu.Unlock()
	return nil
}

// Resolve returns the string at the dotted key path, or the key itself when
// the path is missing or does not end at a string.
func (r *Resolver) Resolve(key string) string {
	value, ok := r.Lookup(key)
	if !ok {
		return key
	}
	text, ok := value.(string)
	if !ok {
		return key
	}
	return text
}

// Lookup walks the dotted key path and returns whatever value sits there.
// Numeric segments index into arrays.
func (r *Resolver) Lookup(key string) (any, bool) {
	table, ok := r.catalog.Table(r.Locale())
	if !ok {
		return nil, false
	}

	var value any = table
	for _, segment := range strings.Split(key, ".") {
		switch node := value.(type) {
		case map[string]any:
			value, ok = node[segment]
		case []any:
			i, err := strconv.Atoi(segment)
			ok = err == nil && i >= 0 && i < len(node)
			if ok {
				value = node[i]
			}
		default:
			ok = false
		}
		if !ok || value == nil {
			return nil, false
		}
	}

	return value, true
}
