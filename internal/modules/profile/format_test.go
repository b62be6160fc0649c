package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestLocaleFor(t *testing.T) {
	instant := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name     string
		header   string
		tag      language.Tag
		dateTime string
		date     string
	}{
		{"empty header falls back to US English", "", language.AmericanEnglish, "3/5/2024, 2:07:09 PM", "3/5/2024"},
		{"british english", "en-GB,en;q=0.8", language.BritishEnglish, "05/03/2024, 14:07:09", "05/03/2024"},
		{"german", "de-DE,de;q=0.9", language.German, "5.3.2024, 14:07:09", "5.3.2024"},
		{"unsupported language falls back", "ja-JP", language.AmericanEnglish, "3/5/2024, 2:07:09 PM", "3/5/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LocaleFor(tt.header, time.UTC)
			assert.Equal(t, tt.tag, l.Tag)
			assert.Equal(t, tt.dateTime, l.DateTime(&instant))
			assert.Equal(t, tt.date, l.Date(&instant))
		})
	}
}

func TestLocale_RendersInLocation(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skip("tzdata not available")
	}
	instant := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

	l := LocaleFor("en-GB", kolkata)

	assert.Equal(t, "06/03/2024, 01:30:00", l.DateTime(&instant))
}

func TestLocale_MissingInstant(t *testing.T) {
	l := LocaleFor("en-US", time.UTC)
	assert.Equal(t, "N/A", l.DateTime(nil))
	assert.Equal(t, "N/A", l.Date(nil))
	assert.Equal(t, "N/A", l.Date(&time.Time{}))
}
