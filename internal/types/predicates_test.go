package types

import (
	"testing"

	"github.com/you-not-fish/gum/internal/syntax"
)

func field(name string, t Type) *Var {
	return NewField(syntax.Pos{}, name, t)
}

func TestIdentical(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same basic", Typ[Int], Typ[Int], true},
		{"int vs num", Typ[Int], Typ[Num], false},
		{"str vs dynamic", Typ[Str], Typ[Dynamic], false},
		{"same array", NewArray(Typ[Int]), NewArray(Typ[Int]), true},
		{"diff array elem", NewArray(Typ[Int]), NewArray(Typ[Num]), false},
		{"nested array", NewArray(NewArray(Typ[Str])), NewArray(NewArray(Typ[Str])), true},
		{"array vs basic", NewArray(Typ[Int]), Typ[Int], false},
		{"nil", nil, Typ[Int], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identical(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Identical(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIdenticalStruct(t *testing.T) {
	s1 := NewStruct([]*Var{field("x", Typ[Int]), field("y", Typ[Num])})
	s2 := NewStruct([]*Var{field("y", Typ[Num]), field("x", Typ[Int])}) // reordered
	s3 := NewStruct([]*Var{field("a", Typ[Int]), field("b", Typ[Num])})
	s4 := NewStruct([]*Var{field("x", Typ[Int]), field("y", Typ[Int])})
	s5 := NewStruct([]*Var{field("x", Typ[Int])})

	if !Identical(s1, s2) {
		t.Error("structs with the same fields in different order should be identical")
	}
	if Identical(s1, s3) {
		t.Error("structs with different field names should not be identical")
	}
	if Identical(s1, s4) {
		t.Error("structs with different field types should not be identical")
	}
	if Identical(s1, s5) || Identical(s5, s1) {
		t.Error("structs with different field counts should not be identical")
	}
}

func TestIdenticalFunc(t *testing.T) {
	f1 := NewFunc([]*Var{NewParam(syntax.Pos{}, "x", Typ[Int])}, Typ[Bool])
	f2 := NewFunc([]*Var{NewParam(syntax.Pos{}, "y", Typ[Int])}, Typ[Bool]) // different param name
	f3 := NewFunc([]*Var{NewParam(syntax.Pos{}, "x", Typ[Num])}, Typ[Bool])
	f4 := NewFunc([]*Var{NewParam(syntax.Pos{}, "x", Typ[Int])}, Typ[Int])
	f5 := NewFunc(nil, Typ[Bool])

	if !Identical(f1, f2) {
		t.Error("functions differing only in parameter names should be identical")
	}
	if Identical(f1, f3) {
		t.Error("functions with different parameter types should not be identical")
	}
	if Identical(f1, f4) {
		t.Error("functions with different results should not be identical")
	}
	if Identical(f1, f5) {
		t.Error("functions with different arity should not be identical")
	}
}

func TestSameKind(t *testing.T) {
	fn := NewFunc(nil, Typ[Dynamic])
	arr := NewArray(Typ[Int])
	st := NewStruct([]*Var{field("a", Typ[Int])})

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"func func", fn, NewFunc([]*Var{field("a", Typ[Str])}, Typ[Int]), true},
		{"array array", arr, NewArray(Typ[Str]), true},
		{"struct struct", st, NewStruct(nil), true},
		{"func array", fn, arr, false},
		{"array struct", arr, st, false},
		{"basic basic", Typ[Int], Typ[Int], false},
		{"struct basic", st, Typ[Dynamic], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameKind(tt.a, tt.b); got != tt.want {
				t.Errorf("SameKind(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBasicPredicates(t *testing.T) {
	if !IsNumeric(Typ[Int]) || !IsNumeric(Typ[Num]) || IsNumeric(Typ[Str]) {
		t.Error("IsNumeric must hold for int and num only")
	}
	if !IsInteger(Typ[Int]) || IsInteger(Typ[Num]) {
		t.Error("IsInteger must hold for int only")
	}
	if !IsString(Typ[Str]) || !IsDynamic(Typ[Dynamic]) {
		t.Error("IsString/IsDynamic mismatch")
	}
	if IsNumeric(Typ[Invalid]) || Is(Typ[Invalid], Int) {
		t.Error("invalid type must satisfy no predicate")
	}
	if !IsComposite(NewArray(Typ[Int])) || IsComposite(Typ[Dynamic]) {
		t.Error("IsComposite mismatch")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		t    Type
		want bool
	}{
		{"int", Typ[Int], true},
		{"invalid", Typ[Invalid], false},
		{"nil", nil, false},
		{"array", NewArray(Typ[Str]), true},
		{"array of invalid", NewArray(Typ[Invalid]), false},
		{"struct with nil field", NewStruct([]*Var{field("a", nil)}), false},
		{"func", NewFunc([]*Var{field("a", Typ[Int])}, Typ[Dynamic]), true},
		{"func nil result", NewFunc(nil, nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.t); got != tt.want {
				t.Errorf("Valid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPredicatesAgreeWithInfo(t *testing.T) {
	for _, b := range Typ[Int:] {
		info := b.Info()
		if got, want := IsNumeric(b), info&InfoNumeric != 0; got != want {
			t.Errorf("IsNumeric(%s) = %v, info says %v", b, got, want)
		}
		if got, want := IsInteger(b), info&InfoInteger != 0; got != want {
			t.Errorf("IsInteger(%s) = %v, info says %v", b, got, want)
		}
		if got, want := IsString(b), info&InfoString != 0; got != want {
			t.Errorf("IsString(%s) = %v, info says %v", b, got, want)
		}
		if got, want := IsDynamic(b), info&InfoBoxed != 0; got != want {
			t.Errorf("IsDynamic(%s) = %v, info says %v", b, got, want)
		}
	}
}
