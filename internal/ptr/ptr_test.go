package ptr_test

import (
	"testing"

	"github.com/saulgabriel7/athlete-core/internal/ptr"
)

func TestRef(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		p := ptr.Ref(42)
		if p == nil {
			t.Fatal("expected non-nil pointer")
		}
		if *p != 42 {
			t.Errorf("expected 42, got %d", *p)
		}
	})

	t.Run("copies the value", func(t *testing.T) {
		s := "original"
		p := ptr.Ref(s)
		s = "modified"
		if *p != "original" {
			t.Errorf("pointer should keep the original value, got %q", *p)
		}
	})
}
