package i18n

import (
	"embed"
	"errors"
	"fmt"

	"github.com/bnema/concierge/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const currentCatalogVersion = 1

//go:embed locales/*.toml
var localeFS embed.FS

// Catalog holds one decoded string table per locale.
type Catalog struct {
	tables map[domain.Locale]map[string]any
}

type catalogHeader struct {
	Version int    `toml:"version"`
	Locale  string `toml:"locale"`
}

func (h *catalogHeader) applyDefaults() {
	if h.Version == 0 {
		h.Version = currentCatalogVersion
	}
}

func (h catalogHeader) validateVersion() error {
	if h.Version > currentCatalogVersion {
		return fmt.Errorf("unsupported locale catalog version %d (current %d)", h.Version, currentCatalogVersion)
	}

	return nil
}

// LoadCatalog decodes the locale tables embedded in the binary.
func LoadCatalog() (*Catalog, error) {
	docs := make(map[domain.Locale][]byte, len(domain.Locales()))
	for _, locale := range domain.Locales() {
		data, err := localeFS.ReadFile("locales/" + string(locale) + ".toml")
		if err != nil {
			return nil, fmt.Errorf("read embedded locale %q: %w", locale, err)
		}
		docs[locale] = data
	}

	return ParseCatalog(docs)
}

func ParseCatalog(docs map[domain.Locale][]byte) (*Catalog, error) {
	if len(docs) == 0 {
		return nil, errors.New("locale catalog is empty")
	}

	catalog := &Catalog{tables: make(map[domain.Locale]map[string]any, len(docs))}
	for locale, data := range docs {
		var header catalogHeader
		if err := toml.Unmarshal(data, &header); err != nil {
			return nil, fmt.Errorf("decode locale %q header: %w", locale, err)
		}
		header.applyDefaults()
		if err := header.validateVersion(); err != nil {
			return nil, fmt.Errorf("locale %q: %w", locale, err)
		}
		if header.Locale != "" && domain.Locale(header.Locale) != locale {
			return nil, fmt.Errorf("locale %q: document declares locale %q", locale, header.Locale)
		}

		table := map[string]any{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("decode locale %q: %w", locale, err)
		}
		delete(table, "version")
		delete(table, "locale")
		catalog.tables[locale] = table
	}

	return catalog, nil
}

func (c *Catalog) Table(locale domain.Locale) (map[string]any, bool) {
	table, ok := c.tables[locale]
	return table, ok
}
