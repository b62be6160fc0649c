package profile

import (
	"time"

	"golang.org/x/text/language"
)

const notAvailable = "N/A"

type localeLayouts struct {
	dateTime string
	date     string
}

// supportedLocales and layoutsByLocale are index-aligned; the first entry is
// the fallback when nothing in Accept-Language matches.
var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.MustParse("en-IN"),
		language.German,
		language.French,
	}
	layoutsByLocale = []localeLayouts{
		{dateTime: "1/2/2006, 3:04:05 PM", date: "1/2/2006"},
		{dateTime: "02/01/2006, 15:04:05", date: "02/01/2006"},
		{dateTime: "2/1/2006, 3:04:05 pm", date: "2/1/2006"},
		{dateTime: "2.1.2006, 15:04:05", date: "2.1.2006"},
		{dateTime: "02/01/2006 15:04:05", date: "02/01/2006"},
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

// Locale renders instants for one viewer.
type Locale struct {
	Tag     language.Tag
	loc     *time.Location
	layouts localeLayouts
}

// LocaleFor picks the best supported locale for an Accept-Language header and
// renders in loc.
func LocaleFor(acceptLanguage string, loc *time.Location) Locale {
	if loc == nil {
		loc = time.Local
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Locale{Tag: supportedLocales[0], loc: loc, layouts: layoutsByLocale[0]}
	}
	_, idx, _ := localeMatcher.Match(tags...)
	return Locale{Tag: supportedLocales[idx], loc: loc, layouts: layoutsByLocale[idx]}
}

// DateTime formats an instant with date and time, or "N/A" when absent.
func (l Locale) DateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return notAvailable
	}
	return t.In(l.loc).Format(l.layouts.dateTime)
}

// Date formats the calendar date of an instant, or "N/A" when absent.
func (l Locale) Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return notAvailable
	}
	return t.In(l.loc).Format(l.layouts.date)
}
