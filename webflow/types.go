// Package webflow is a client for the Webflow v2 Data API, covering the
// endpoints the translation pipeline reads from and writes to.
package webflow

import "github.com/fluxlocale/weft"

// Site is one site visible to the API token.
type Site struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName"`
}

// Page is a site page listing entry.
type Page struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Component is a reusable component listing entry.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Collection is a CMS collection listing entry.
type Collection struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Slug        string `json:"slug"`
}

// Item is a CMS collection item. FieldData carries the item's fields as the
// store returns them; fields not under translation are passed back through
// unchanged on update.
type Item struct {
	ID          string         `json:"id"`
	CMSLocaleID string         `json:"cmsLocaleId"`
	IsDraft     bool           `json:"isDraft"`
	IsArchived  bool           `json:"isArchived"`
	FieldData   map[string]any `json:"fieldData"`
}

// Locale is one locale of a site's localization configuration. ID addresses
// DOM writes; CMSLocaleID addresses collection item writes. The two
// identifier spaces are distinct.
type Locale struct {
	ID          string `json:"id"`
	CMSLocaleID string `json:"cmsLocaleId"`
	Tag         string `json:"tag"`
	DisplayName string `json:"displayName"`
	Enabled     bool   `json:"enabled"`
}

// Locales is a site's locale configuration: exactly one primary locale and
// zero or more secondary locales.
type Locales struct {
	Primary   Locale   `json:"primary"`
	Secondary []Locale `json:"secondary"`
}

// All returns the primary locale followed by the secondary locales.
func (l Locales) All() []Locale {
	out := make([]Locale, 0, 1+len(l.Secondary))
	out = append(out, l.Primary)
	out = append(out, l.Secondary...)
	return out
}

// Targets returns the batch targets for DOM translation: every secondary
// locale. The primary locale is never a translation target.
func (l Locales) Targets() []weft.LocaleTarget {
	var out []weft.LocaleTarget
	for _, loc := range l.Secondary {
		out = append(out, weft.LocaleTarget{
			LocaleID:    loc.ID,
			CMSLocaleID: loc.CMSLocaleID,
			Tag:         loc.Tag,
			DisplayName: loc.DisplayName,
		})
	}
	return out
}

// CMSTargets returns the batch targets for collection item translation:
// enabled secondary locales only, since the CMS rejects writes against
// disabled ones.
func (l Locales) CMSTargets() []weft.LocaleTarget {
	var out []weft.LocaleTarget
	for _, loc := range l.Secondary {
		if !loc.Enabled {
			continue
		}
		out = append(out, weft.LocaleTarget{
			LocaleID:    loc.ID,
			CMSLocaleID: loc.CMSLocaleID,
			Tag:         loc.Tag,
			DisplayName: loc.DisplayName,
		})
	}
	return out
}
