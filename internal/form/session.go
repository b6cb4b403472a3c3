package form

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"berichtsheft/internal/overlay"
	"berichtsheft/internal/textlayout"
)

var (
	// ErrUnknownField is returned when a value is set for a name the schema
	// does not define.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrMissingStartDate is returned by Prepare when no start date is set.
	ErrMissingStartDate = errors.New("form: start date is required")
)

// Session holds the current values of one form. It is owned by a single
// caller and is not safe for concurrent use.
type Session struct {
	values map[string]string
}

// NewSession returns a session populated with the schema defaults.
func NewSession() *Session {
	s := &Session{values: make(map[string]string, len(Schema))}
	for _, f := range Schema {
		s.values[f.Name] = f.Default
	}
	s.values[OutputDirectory] = DefaultOutputDirectory()
	return s
}

// DefaultOutputDirectory is where reports are written unless configured
// otherwise.
func DefaultOutputDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Documents", "School", "Berichtsheft", "berichtsheft AP2")
}

// Set normalizes text and stores it under name.
func (s *Session) Set(name, text string) error {
	if _, ok := Lookup(name); !ok {
		return errors.Wrap(ErrUnknownField, name)
	}
	s.values[name] = textlayout.Normalize(text)
	return nil
}

// Get returns the value of name, or "" for unknown fields.
func (s *Session) Get(name string) string {
	return s.values[name]
}

// Values returns a copy of all values keyed by field name.
func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Apply sets every known field present in values. Unknown keys are ignored
// so older or newer config files still load.
func (s *Session) Apply(values map[string]string) {
	for name, value := range values {
		_ = s.Set(name, value)
	}
}

// ApplyDefaults fills the values a first-time user most likely wants.
func (s *Session) ApplyDefaults() {
	s.values[AusbildungJahr] = "2"
	s.values[Hour1] = "40"
}

// Request builds the render request for the printable fields on top of base.
func (s *Session) Request(base overlay.Request) overlay.Request {
	req := base
	req.Content = make(map[string]string)
	req.Positions = Positions(base.PageSize)
	req.WrapWidths = make(map[string]float64)
	for _, f := range Schema {
		if f.Setting {
			continue
		}
		req.Content[f.Name] = s.values[f.Name]
		if f.WrapWidth > 0 {
			req.WrapWidths[f.Name] = f.WrapWidth
		}
	}
	return req
}

// Positions returns the page positions of all printable fields.
func Positions(page overlay.PageSize) map[string]overlay.Point {
	positions := make(map[string]overlay.Point)
	for _, f := range Schema {
		if !f.Setting {
			positions[f.Name] = page.FromTop(f.X, f.Y)
		}
	}
	return positions
}

// Prepare derives the computed fields ahead of generation: a missing end
// date is taken from the start date and both signature dates are set to
// the end date.
func (s *Session) Prepare() error {
	start := s.values[StartDate]
	if strings.TrimSpace(start) != "" && strings.TrimSpace(s.values[EndDate]) == "" {
		s.values[EndDate] = EndOfWeek(start)
	}
	s.values[DateOfSign] = s.values[EndDate]
	s.values[DateOfSign2] = s.values[EndDate]

	if strings.TrimSpace(start) == "" {
		return ErrMissingStartDate
	}
	return nil
}

// OutputFilename names the report after its week number and start date.
func (s *Session) OutputFilename() string {
	date := strings.ReplaceAll(s.values[StartDate], "/", "_")
	week := strings.TrimSpace(s.values[WeekNo])
	if week != "" && week != "0" {
		return "berichtsheft_w" + week + "_" + date + ".pdf"
	}
	return "berichtsheft_w" + date + ".pdf"
}

// OutputPath joins the configured output directory and OutputFilename.
func (s *Session) OutputPath() string {
	return filepath.Join(s.values[OutputDirectory], s.OutputFilename())
}

// PreviousWeek moves the date range one week back and decrements the week
// number, never below 1. Without any date the week before now is used. It
// reports whether the dates changed.
func (s *Session) PreviousWeek(now time.Time) bool {
	if !s.shiftWeek(-1, now) {
		return false
	}
	if n, ok := weekNumber(s.values[WeekNo]); ok {
		if n--; n < 1 {
			n = 1
		}
		s.values[WeekNo] = strconv.Itoa(n)
	}
	return true
}

// NextWeek moves the date range one week forward and increments the week
// number, starting at 1 when none is set.
func (s *Session) NextWeek(now time.Time) bool {
	if !s.shiftWeek(1, now) {
		return false
	}
	week := strings.TrimSpace(s.values[WeekNo])
	if n, ok := weekNumber(week); ok {
		s.values[WeekNo] = strconv.Itoa(n + 1)
	} else if week == "" {
		s.values[WeekNo] = "1"
	}
	return true
}

// CurrentWeek sets the date range to the week containing now. The week
// number is left alone.
func (s *Session) CurrentWeek(now time.Time) {
	s.values[StartDate], s.values[EndDate] = WeekDates("", 0, now)
}

func (s *Session) shiftWeek(offset int, now time.Time) bool {
	base := s.values[StartDate]
	if base == "" {
		base = s.values[EndDate]
	}
	monday, friday := WeekDates(base, offset, now)
	if monday == "" || friday == "" {
		return false
	}
	s.values[StartDate] = monday
	s.values[EndDate] = friday
	return true
}

func weekNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
