package transform

import "testing"

func TestMarkDirty(t *testing.T) {
	tests := []struct {
		name  string
		start int
		mark  int
		want  int
	}{
		{name: "raises clean counter", start: 0, mark: 3, want: 3},
		{name: "raises partial counter", start: 1, mark: 3, want: 3},
		{name: "never lowers", start: 5, mark: 3, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Identity()
			tr.Dirty = tt.start
			tr.MarkDirty(tt.mark)
			if tr.Dirty != tt.want {
				t.Errorf("Dirty = %d, want %d", tr.Dirty, tt.want)
			}
		})
	}
}

func TestConsume(t *testing.T) {
	tr := Identity()
	tr.Dirty = 2

	for i, want := range []bool{true, true, false, false} {
		if got := tr.Consume(); got != want {
			t.Errorf("Consume() #%d = %v, want %v", i, got, want)
		}
	}
	if tr.Dirty != 0 {
		t.Errorf("Dirty = %d, want 0", tr.Dirty)
	}
}
