package refdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultNumerals(t *testing.T) {
	table := DefaultNumerals()
	expected := [NumeralCount]string{"०", "१", "२", "३", "४", "५", "६", "७", "८", "९"}
	if table != expected {
		t.Errorf("unexpected default numeral table: %v", table)
	}
}

func TestDefaultPunctuations(t *testing.T) {
	puncts := DefaultPunctuations()
	if len(puncts) == 0 {
		t.Fatal("expected non-empty default punctuation set")
	}
	found := false
	for _, p := range puncts {
		if p == "।" {
			found = true
		}
	}
	if !found {
		t.Error("expected danda in default punctuation set")
	}
}

func TestLoadNumerals(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "numbers.json")
		data := `{"numbers": ["0", "1", "2", "3", "4", "5", "6", "7", "8", "9"]}`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		table, err := LoadNumerals(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table[3] != "3" {
			t.Errorf("expected entry 3, got %q", table[3])
		}
	})

	t.Run("wrong length is fatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "numbers.json")
		if err := os.WriteFile(path, []byte(`{"numbers": ["0", "1"]}`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadNumerals(path); err == nil {
			t.Error("expected error for short numeral table")
		}
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		if _, err := LoadNumerals(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestStopwords(t *testing.T) {
	t.Run("embedded hindi list", func(t *testing.T) {
		words := Stopwords("", "hindi")
		if len(words) == 0 {
			t.Fatal("expected embedded hindi stopwords")
		}
		if words[0] != "के" {
			t.Errorf("expected ordered list starting with के, got %q", words[0])
		}
	})

	t.Run("missing dialect is recoverable", func(t *testing.T) {
		words := Stopwords(t.TempDir(), "bhojpuri")
		if len(words) != 0 {
			t.Errorf("expected empty list for missing dialect, got %d entries", len(words))
		}
	})

	t.Run("external directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "awadhi_stopwords.txt")
		if err := os.WriteFile(path, []byte("एक\nदो\n\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		words := Stopwords(dir, "awadhi")
		if len(words) != 2 || words[0] != "एक" || words[1] != "दो" {
			t.Errorf("unexpected stopwords: %v", words)
		}
	})
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("  one \n\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := ReadLines(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"one", "two", "three"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], entries[i])
		}
	}
}
