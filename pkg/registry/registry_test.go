package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
)

// TestItem is a simple type for testing
type TestItem struct {
	ID   int
	Name string
}

func TestNew(t *testing.T) {
	reg := New[TestItem]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if reg.Count() != 0 {
		t.Errorf("New registry should be empty, got count %d", reg.Count())
	}
}

func TestRegister(t *testing.T) {
	reg := New[TestItem]()

	t.Run("register valid item", func(t *testing.T) {
		err := reg.Register("item1", TestItem{ID: 1, Name: "test"})

		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}

		if reg.Count() != 1 {
			t.Errorf("Count() = %d, want 1", reg.Count())
		}
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", TestItem{ID: 2})

		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register(\"\") error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("register duplicate name", func(t *testing.T) {
		err := reg.Register("item1", TestItem{ID: 3})

		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("duplicate Register() error = %v, want ErrAlreadyExists", err)
		}
	})
}

func TestGet(t *testing.T) {
	reg := New[TestItem]()
	want := TestItem{ID: 7, Name: "seven"}
	if err := reg.Register("seven", want); err != nil {
		t.Fatal(err)
	}

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("seven")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != want {
			t.Errorf("Get() = %+v, want %+v", got, want)
		}
	})

	t.Run("get missing item", func(t *testing.T) {
		_, err := reg.Get("missing")
		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
		}
	})
}

func TestListSorted(t *testing.T) {
	reg := New[TestItem]()
	for _, name := range []string{"zebra", "apple", "mango"} {
		if err := reg.Register(name, TestItem{}); err != nil {
			t.Fatal(err)
		}
	}

	names := reg.List()
	want := []string{"apple", "mango", "zebra"}
	if len(names) != len(want) {
		t.Fatalf("List() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestHas(t *testing.T) {
	reg := New[TestItem]()
	_ = reg.Register("present", TestItem{})

	if !reg.Has("present") {
		t.Error("Has(present) = false, want true")
	}
	if reg.Has("absent") {
		t.Error("Has(absent) = true, want false")
	}
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[TestItem]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("item%d", i)
			if err := reg.Register(name, TestItem{ID: i}); err != nil {
				t.Errorf("Register(%s) error = %v", name, err)
			}
			if _, err := reg.Get(name); err != nil {
				t.Errorf("Get(%s) error = %v", name, err)
			}
		}(i)
	}
	wg.Wait()

	if reg.Count() != 50 {
		t.Errorf("Count() = %d, want 50", reg.Count())
	}
}
