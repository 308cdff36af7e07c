package generate

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// spanishMonths names the months for document dates
var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// SpanishDate formats a date the way the documents spell it out,
// e.g. "22 de agosto de 2026"
func SpanishDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// NewRunID returns a short random identifier for a run folder
func NewRunID() string {
	return uuid.NewString()[:8]
}

// RunFolderName builds the per-run subfolder name from the run start
// time and a run identifier
func RunFolderName(t time.Time, id string) string {
	return fmt.Sprintf("run-%s-%s", t.Format("20060102-150405"), id)
}

// accentStripper decomposes accented letters and drops the combining
// marks, so "Ñahui" slugs to "nahui"
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug folds a value into a lowercase ASCII filename fragment: accents
// stripped, every other non-alphanumeric run collapsed to one dash.
// Returns "" when nothing usable remains.
func Slug(s string) string {
	folded, _, err := transform.String(accentStripper, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingDash := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}

// templateSlug names a template by its file stem
func templateSlug(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if slug := Slug(stem); slug != "" {
		return slug
	}
	return "documento"
}
