package help

import (
	"strings"
	"testing"

	"github.com/nhle/todo-tracker/internal/keys"
)

func TestViewShowsShortcutReference(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 40)

	out := m.View()
	for _, want := range []string{
		"Keyboard Shortcuts",
		"driven from the list view",
		"returns to the list",
		"toggle complete",
		"cycle sort",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help view missing %q", want)
		}
	}
}

func TestSetSizePropagatesToHelp(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 40)
	m.SetSize(100, 30)

	if m.width != 100 || m.height != 30 {
		t.Errorf("size = %dx%d, want 100x30", m.width, m.height)
	}
	if m.help.Width != 96 {
		t.Errorf("inner help width = %d, want 96", m.help.Width)
	}
}
