package template

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// DefaultDateLayout is the PHP-style layout of {Today} and of {Today#}.
const DefaultDateLayout = "Y-m-d"

// Regular expressions for the placeholder passes.
var (
	// escapePattern matches {=text}; text is at least one char other than '}'.
	escapePattern = regexp.MustCompile(`\{=([^}]+)\}`)

	// datePattern matches {Today}, {Today#fmt} and {null} in any letter case.
	datePattern = regexp.MustCompile(`(?i)\{(?:today(?:#[^}]*)?|null)\}`)

	// fieldPattern matches {key}. Keys hold no braces and no sentinels.
	fieldPattern = regexp.MustCompile(`\{([^{}\x00]*)\}`)

	// rangePattern matches #entry#.
	rangePattern = regexp.MustCompile(`#([^#\x00]*)#`)

	// sentinelPattern matches the stand-ins left by the escape pass.
	sentinelPattern = regexp.MustCompile("\x00([0-9]+)\x00")
)

// Resolver substitutes placeholders in templates.
//
// Create with NewResolver() and configure with Option functions.
type Resolver struct {
	now        func() time.Time
	formatDate DateFormatter
	ranges     record.ValueRanges
	logger     *slog.Logger
}

// NewResolver creates a Resolver with the given options.
//
// Default configuration:
//   - Clock: time.Now
//   - DateFormatter: FormatDate
//   - ValueRanges: none (#entry# is kept as-is)
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		now:        time.Now,
		formatDate: FormatDate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns tmpl with every placeholder substituted, reading
// attribute values of rec in lang.
func (r *Resolver) Resolve(rec record.Accessor, tmpl string, lang record.LanguageID) (string, error) {
	if tmpl == "" {
		return "", nil
	}

	// Pass 1: protect escaped literals.
	var escaped []string
	s := escapePattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		escaped = append(escaped, match[2:len(match)-1])
		return "\x00" + strconv.Itoa(len(escaped)-1) + "\x00"
	})

	// Pass 2: dates and null.
	now := r.now()
	s = datePattern.ReplaceAllStringFunc(s, func(match string) string {
		inner := match[1 : len(match)-1]
		if strings.EqualFold(inner, "null") {
			return ""
		}
		_, layout, _ := strings.Cut(inner, "#")
		if layout == "" {
			layout = DefaultDateLayout
		}
		return r.formatDate(now, layout)
	})

	// Pass 3: attribute references.
	var firstErr error
	s = fieldPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		key := match[1 : len(match)-1]
		v, err := r.fieldValue(rec, key, lang)
		if err != nil {
			firstErr = err
			return match
		}
		return v
	})
	if firstErr != nil {
		return "", firstErr
	}

	// Pass 4: value-range entries.
	if r.ranges != nil {
		rangeLang := rec.CurrentLanguage()
		s = rangePattern.ReplaceAllStringFunc(s, func(match string) string {
			if firstErr != nil {
				return match
			}
			entry := match[1 : len(match)-1]
			v, err := r.ranges.DisplayValue(entry, rangeLang)
			switch {
			case record.IsNotFound(err):
				r.debug("value range entry not found", slog.String("entry", entry))
				return ""
			case err != nil:
				firstErr = &LookupError{Kind: "value range entry", Key: entry, Err: err}
				return match
			}
			return v
		})
		if firstErr != nil {
			return "", firstErr
		}
	}

	// Pass 5: restore escaped literals.
	if len(escaped) > 0 {
		s = sentinelPattern.ReplaceAllStringFunc(s, func(match string) string {
			i, err := strconv.Atoi(match[1 : len(match)-1])
			if err != nil || i >= len(escaped) {
				return match
			}
			return escaped[i]
		})
	}

	return s, nil
}

// fieldValue reads the substitution value of an attribute placeholder.
func (r *Resolver) fieldValue(rec record.Accessor, key string, lang record.LanguageID) (string, error) {
	f, err := rec.Field(key)
	if err != nil {
		if record.IsNotFound(err) {
			r.debug("placeholder attribute not found", slog.String("attribute", key))
			return "", nil
		}
		return "", &LookupError{Kind: "field", Key: key, Err: err}
	}

	switch f.Type() {
	case record.TypeStringFunction, record.TypeValueRange:
		v, err := rec.FormattedValue(key, lang)
		if err != nil && !record.IsNotFound(err) {
			return "", &LookupError{Kind: "formatted value", Key: key, Err: err}
		}
		if v != "" {
			return v, nil
		}
	case record.TypePlain, record.TypeReference, record.TypeFile, record.TypeTable:
	}

	v, err := rec.Value(key, lang)
	if err != nil {
		if record.IsNotFound(err) {
			return "", nil
		}
		return "", &LookupError{Kind: "value", Key: key, Err: err}
	}
	return v, nil
}

func (r *Resolver) debug(msg string, attrs ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Debug(msg, attrs...)
}

// LookupError is returned when the record accessor or the value-range
// lookup fails for a reason other than a missing key.
type LookupError struct {
	// Kind names what was looked up ("field", "value", ...).
	Kind string
	// Key is the attribute id or value-range entry id.
	Key string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("resolve %s %q: %v", e.Kind, e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// defaultResolver is the package-level resolver with default settings.
var defaultResolver = NewResolver()

// Resolve resolves tmpl with the default resolver. Value-range
// placeholders are left untouched.
func Resolve(rec record.Accessor, tmpl string, lang record.LanguageID) (string, error) {
	return defaultResolver.Resolve(rec, tmpl, lang)
}
