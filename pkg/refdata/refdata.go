// Package refdata loads the reference data the cleaning pipeline depends on:
// punctuation sets, sundry stop markers, the numeral lookup table, and
// per-dialect stopword lists. Hindi defaults are embedded in the binary;
// every loader also accepts an external file to override them.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/indusnlp/shuddhi/internal/logger"
)

//go:embed data
var dataFS embed.FS

// NumeralCount is the required size of a numeral lookup table,
// indexed by ASCII digit value 0-9.
const NumeralCount = 10

// punctuationSet is the on-disk schema for punctuation data.
type punctuationSet struct {
	Punctuations []string `json:"punctuations"`
}

// stopSet is the on-disk schema for sundry stop markers.
type stopSet struct {
	Stops []string `json:"stops"`
}

// numeralTable is the on-disk schema for the numeral lookup table.
type numeralTable struct {
	Numbers []string `json:"numbers"`
}

var (
	defaultPunctuations []string
	defaultStops        []string
	defaultNumerals     [NumeralCount]string
)

func init() {
	var err error
	defaultPunctuations, err = parsePunctuations(mustEmbed("data/hindi_punctuations.json"))
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded punctuation data invalid: %v", err))
	}
	defaultStops, err = parseStops(mustEmbed("data/sundry_stops.json"))
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded stop data invalid: %v", err))
	}
	defaultNumerals, err = parseNumerals(mustEmbed("data/hindi_numbers.json"))
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded numeral data invalid: %v", err))
	}
}

func mustEmbed(name string) []byte {
	b, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded file %s missing: %v", name, err))
	}
	return b
}

func parsePunctuations(b []byte) ([]string, error) {
	var set punctuationSet
	if err := json.Unmarshal(b, &set); err != nil {
		return nil, fmt.Errorf("failed to parse punctuation set: %w", err)
	}
	if len(set.Punctuations) == 0 {
		return nil, fmt.Errorf("punctuation set is empty")
	}
	return set.Punctuations, nil
}

func parseStops(b []byte) ([]string, error) {
	var set stopSet
	if err := json.Unmarshal(b, &set); err != nil {
		return nil, fmt.Errorf("failed to parse stop set: %w", err)
	}
	return set.Stops, nil
}

func parseNumerals(b []byte) ([NumeralCount]string, error) {
	var table numeralTable
	if err := json.Unmarshal(b, &table); err != nil {
		return [NumeralCount]string{}, fmt.Errorf("failed to parse numeral table: %w", err)
	}
	if len(table.Numbers) != NumeralCount {
		return [NumeralCount]string{}, fmt.Errorf("numeral table must have exactly %d entries, got %d",
			NumeralCount, len(table.Numbers))
	}
	var out [NumeralCount]string
	copy(out[:], table.Numbers)
	return out, nil
}

// DefaultPunctuations returns the embedded Hindi punctuation set.
func DefaultPunctuations() []string {
	out := make([]string, len(defaultPunctuations))
	copy(out, defaultPunctuations)
	return out
}

// DefaultStops returns the embedded sundry stop markers.
func DefaultStops() []string {
	out := make([]string, len(defaultStops))
	copy(out, defaultStops)
	return out
}

// DefaultNumerals returns the embedded Devanagari numeral table.
func DefaultNumerals() [NumeralCount]string {
	return defaultNumerals
}

// LoadPunctuations reads a punctuation set from a JSON file.
// The schema is {"punctuations": [...]}.
func LoadPunctuations(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read punctuation file: %w", err)
	}
	return parsePunctuations(b)
}

// LoadStops reads sundry stop markers from a JSON file.
// The schema is {"stops": [...]}.
func LoadStops(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stop file: %w", err)
	}
	return parseStops(b)
}

// LoadNumerals reads a numeral lookup table from a JSON file.
// The schema is {"numbers": [ten glyphs indexed 0-9]}; any other
// length is an error.
func LoadNumerals(path string) ([NumeralCount]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return [NumeralCount]string{}, fmt.Errorf("failed to read numeral file: %w", err)
	}
	return parseNumerals(b)
}

// Stopwords returns the ordered stopword list for a dialect, read from
// <dir>/<dialect>_stopwords.txt. A missing file is recoverable: it logs
// a warning and returns an empty list. If dir is empty, the embedded
// default list for the dialect is used instead.
func Stopwords(dir, dialect string) []string {
	var b []byte
	var err error
	if dir == "" {
		b, err = dataFS.ReadFile("data/stopwords/" + dialect + "_stopwords.txt")
	} else {
		b, err = os.ReadFile(filepath.Join(dir, dialect+"_stopwords.txt"))
	}
	if err != nil {
		logger.Warn("stopword list not found for dialect", "dialect", dialect, "error", err)
		return nil
	}

	var words []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			words = append(words, line)
		}
	}
	return words
}

// ReadLines reads a newline-delimited list file, returning trimmed,
// non-empty entries in file order.
func ReadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}
	var entries []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}
