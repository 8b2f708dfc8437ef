package calendar

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// HolidayProvider answers whether a date is a public holiday.
type HolidayProvider interface {
	// Holiday returns the holiday name for d, or "" and false.
	Holiday(d Date) (string, bool)
}

// NoHolidays is a provider without any holidays.
type NoHolidays struct{}

// Holiday implements HolidayProvider.
func (NoHolidays) Holiday(Date) (string, bool) { return "", false }

// Regions returns the names accepted by RegionProvider.
func Regions() []string {
	return []string{"none", "nrw"}
}

// RegionProvider returns the built-in provider for a region name.
func RegionProvider(region string) (HolidayProvider, error) {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case "", "none":
		return NoHolidays{}, nil
	case "nrw":
		return NewYearlyProvider(NRWHolidays), nil
	}
	return nil, fmt.Errorf("unknown holiday region %q", region)
}

// YearlyProvider computes holidays per year on demand and caches the result.
type YearlyProvider struct {
	compute func(year int) map[Date]string

	mu    sync.Mutex
	years map[int]map[Date]string
}

// NewYearlyProvider wraps a per-year holiday function.
func NewYearlyProvider(compute func(year int) map[Date]string) *YearlyProvider {
	return &YearlyProvider{
		compute: compute,
		years:   make(map[int]map[Date]string),
	}
}

// Holiday implements HolidayProvider.
func (p *YearlyProvider) Holiday(d Date) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.years[d.Year]
	if !ok {
		set = p.compute(d.Year)
		p.years[d.Year] = set
	}
	name, ok := set[d]
	return name, ok
}

// NRWHolidays returns the public holidays of North Rhine-Westphalia for year.
func NRWHolidays(year int) map[Date]string {
	holidays := map[Date]string{
		NewDate(year, time.January, 1):   "Neujahr",
		NewDate(year, time.May, 1):       "Tag der Arbeit",
		NewDate(year, time.October, 3):   "Tag der Deutschen Einheit",
		NewDate(year, time.November, 1):  "Allerheiligen",
		NewDate(year, time.December, 25): "1. Weihnachtstag",
		NewDate(year, time.December, 26): "2. Weihnachtstag",
	}

	easter := EasterSunday(year)
	holidays[easter.AddDays(-2)] = "Karfreitag"
	holidays[easter.AddDays(1)] = "Ostermontag"
	holidays[easter.AddDays(39)] = "Christi Himmelfahrt"
	holidays[easter.AddDays(50)] = "Pfingstmontag"
	holidays[easter.AddDays(60)] = "Fronleichnam"

	return holidays
}

// EasterSunday returns the date of Western Easter using the
// Meeus/Jones/Butcher algorithm.
func EasterSunday(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return NewDate(year, time.Month(month), day)
}

// HolidayFile is the on-disk format of custom holidays.
//
//	holidays:
//	  - date: 2024-06-14
//	    name: Company day
//	  - date: 12-24
//	    name: Christmas Eve
//	    yearly: true
type HolidayFile struct {
	Holidays []HolidayEntry `yaml:"holidays"`
}

// HolidayEntry is one custom holiday. Yearly entries use a MM-DD date.
type HolidayEntry struct {
	Date   string `yaml:"date"`
	Name   string `yaml:"name"`
	Yearly bool   `yaml:"yearly"`
}

type monthDay struct {
	month time.Month
	day   int
}

// CustomProvider serves holidays read from a YAML file.
type CustomProvider struct {
	fixed  map[Date]string
	yearly map[monthDay]string
}

// LoadHolidayFile reads custom holidays from path.
func LoadHolidayFile(path string) (*CustomProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday file: %w", err)
	}
	return ParseHolidays(data)
}

// ParseHolidays parses the YAML holiday format.
func ParseHolidays(data []byte) (*CustomProvider, error) {
	var file HolidayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse holiday file: %w", err)
	}

	p := &CustomProvider{
		fixed:  make(map[Date]string),
		yearly: make(map[monthDay]string),
	}
	for i, h := range file.Holidays {
		if h.Name == "" {
			return nil, fmt.Errorf("holiday %d: name is required", i)
		}
		if h.Yearly {
			t, err := time.Parse("01-02", h.Date)
			if err != nil {
				return nil, fmt.Errorf("holiday %d: yearly date %q must be MM-DD", i, h.Date)
			}
			p.yearly[monthDay{t.Month(), t.Day()}] = h.Name
			continue
		}
		d, err := ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %d: %w", i, err)
		}
		p.fixed[d] = h.Name
	}
	return p, nil
}

// Holiday implements HolidayProvider. Fixed dates win over yearly ones.
func (p *CustomProvider) Holiday(d Date) (string, bool) {
	if name, ok := p.fixed[d]; ok {
		return name, true
	}
	name, ok := p.yearly[monthDay{d.Month, d.Day}]
	return name, ok
}

// Len returns the number of holidays defined in the file.
func (p *CustomProvider) Len() int {
	return len(p.fixed) + len(p.yearly)
}

// Holidays chains providers; the first provider knowing a date wins.
type Holidays []HolidayProvider

// Holiday implements HolidayProvider.
func (hs Holidays) Holiday(d Date) (string, bool) {
	for _, h := range hs {
		if h == nil {
			continue
		}
		if name, ok := h.Holiday(d); ok {
			return name, true
		}
	}
	return "", false
}
