package domain

import (
	"fmt"
	"strings"
)

type Locale string

const (
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"

	DefaultLocale = LocaleZH
)

func Locales() []Locale {
	return []Locale{LocaleZH, LocaleEN}
}

func ParseLocale(raw string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case LocaleZH:
		return LocaleZH, nil
	case LocaleEN:
		return LocaleEN, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, raw)
	}
}

// Other returns the locale a toggle switches to.
func (l Locale) Other() Locale {
	if l == LocaleZH {
		return LocaleEN
	}
	return LocaleZH
}
