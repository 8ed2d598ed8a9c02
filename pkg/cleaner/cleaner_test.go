package cleaner

import (
	"errors"
	"strings"
	"testing"
)

type upperCleaner struct{}

func (upperCleaner) Clean(text string) (string, error) { return strings.ToUpper(text), nil }
func (upperCleaner) Name() string                      { return "upper" }

type failCleaner struct{}

func (failCleaner) Clean(string) (string, error) { return "", errors.New("broken") }
func (failCleaner) Name() string                 { return "fail" }

func TestNoopCleaner(t *testing.T) {
	c := NewNoop()
	in := "अपरिवर्तित पाठ\nwith latin"
	got, err := c.Clean(in)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != in {
		t.Errorf("noop must not modify input, got %q", got)
	}
	if c.Name() != "noop" {
		t.Errorf("unexpected name %q", c.Name())
	}
}

func TestChainCleaner(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		c := NewChain(NewNoop(), upperCleaner{})
		got, err := c.Clean("abc")
		if err != nil {
			t.Fatalf("Clean() error = %v", err)
		}
		if got != "ABC" {
			t.Errorf("expected ABC, got %q", got)
		}
	})

	t.Run("stops on error", func(t *testing.T) {
		c := NewChain(failCleaner{}, upperCleaner{})
		if _, err := c.Clean("abc"); err == nil {
			t.Error("expected error from failing cleaner")
		}
	})

	t.Run("name lists members", func(t *testing.T) {
		c := NewChain(NewNoop(), upperCleaner{})
		if c.Name() != "chain(noop->upper)" {
			t.Errorf("unexpected name %q", c.Name())
		}
	})
}
