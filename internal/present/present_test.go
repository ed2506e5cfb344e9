package present

import "testing"

// go test's stdout is never a real terminal, so every render falls back to
// plain fmt.Sprintf formatting with no ANSI escapes.

func TestAddedFormatsWithoutColorWhenNotATerminal(t *testing.T) {
	if IsTerminal() {
		t.Skip("stdout unexpectedly reports as a terminal in this environment")
	}
	got := Added("new file: %s", "a.txt")
	want := "new file: a.txt"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDeletedModifiedUntrackedHashFormatWithoutColor(t *testing.T) {
	if IsTerminal() {
		t.Skip("stdout unexpectedly reports as a terminal in this environment")
	}
	cases := []struct {
		render func(string, ...interface{}) string
		format string
		args   []interface{}
		want   string
	}{
		{Deleted, "deleted: %s", []interface{}{"b.txt"}, "deleted: b.txt"},
		{Modified, "modified: %s", []interface{}{"c.txt"}, "modified: c.txt"},
		{Untracked, "untracked: %s", []interface{}{"d.txt"}, "untracked: d.txt"},
		{Hash, "%s", []interface{}{"abc1234"}, "abc1234"},
	}
	for _, c := range cases {
		if got := c.render(c.format, c.args...); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}
