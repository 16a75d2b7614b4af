package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{"with filename", NewPos("main.js", 10, 5), "main.js:10:5"},
		{"without filename", NewPos("", 10, 5), "10:5"},
		{"line 1 col 1", NewPos("shim.js", 1, 1), "shim.js:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos("main.js", 1, 1), true},
		{"zero line", NewPos("main.js", 0, 1), false},
		{"zero value", Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPosBefore(t *testing.T) {
	tests := []struct {
		name string
		p, q Pos
		want bool
	}{
		{"earlier line", NewPos("a.js", 1, 9), NewPos("a.js", 2, 1), true},
		{"earlier col", NewPos("a.js", 3, 1), NewPos("a.js", 3, 2), true},
		{"same", NewPos("a.js", 3, 2), NewPos("a.js", 3, 2), false},
		{"later", NewPos("a.js", 4, 1), NewPos("a.js", 3, 2), false},
		{"filename order", NewPos("b.js", 1, 1), NewPos("a.js", 9, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Before(tt.q); got != tt.want {
				t.Errorf("%s.Before(%s) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}
