package schedule

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Entry is one market day shown on the dashboard.
// DisplayName is what users see; APILocation is what the weather API geocodes.
type Entry struct {
	Day         string `yaml:"day" validate:"required"`
	DisplayName string `yaml:"display_name" validate:"required"`
	APILocation string `yaml:"api_location" validate:"required"`
}

// file is the on-disk shape of a schedule override.
type file struct {
	Entries []Entry `yaml:"entries" validate:"dive"`
}

var (
	validate   = validator.New()
	whitespace = regexp.MustCompile(`\s+`)
)

// Default returns the built-in weekly market schedule.
func Default() []Entry {
	return []Entry{
		{Day: "Lunedì", DisplayName: "Mercato Mirano", APILocation: "Mirano"},
		{Day: "Martedì", DisplayName: "Mercato Marghera", APILocation: "Marghera"},
		{Day: "Mercoledì", DisplayName: "Mercato Mestre", APILocation: "Mestre"},
		{Day: "Venerdì", DisplayName: "Mercato Mestre", APILocation: "Mestre"},
		{Day: "Sabato", DisplayName: "Mercato Spinea", APILocation: "Spinea"},
	}
}

// Load reads a YAML schedule from path. An empty path selects Default.
// A file with no entries is valid and yields an empty schedule.
func Load(path string) ([]Entry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schedule file: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid schedule file: %w", err)
	}

	if f.Entries == nil {
		return []Entry{}, nil
	}
	return f.Entries, nil
}

// Suffix returns the per-row identifier suffix, e.g. "lunedì-mirano-0".
func (e Entry) Suffix(index int) string {
	loc := whitespace.ReplaceAllString(strings.ToLower(e.APILocation), "-")
	return fmt.Sprintf("%s-%s-%d", strings.ToLower(e.Day), loc, index)
}

// RowID returns the DOM id of the row at index.
func RowID(index int) string {
	return fmt.Sprintf("row-%d", index)
}
