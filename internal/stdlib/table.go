// Package stdlib provides the signature table of the C library globals a
// program can call, and the shim that defines the JavaScript globals on
// top of them.
package stdlib

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

//go:embed cstdlib.json
var defaultTable []byte

//go:embed shim.js
var shim []byte

var noPos syntax.Pos

// ShimName is the file name reported for positions inside the shim.
const ShimName = "<shim>"

// Shim returns the source of the built-in compatibility shim.
func Shim() []byte {
	return shim
}

// Table is a decoded signature table.
type Table struct {
	// Version of the table itself.
	Version string

	// Runtime is the semver constraint the runtime header must satisfy.
	Runtime string

	// Globals in declaration order.
	Globals []infer.Global
}

// Lookup returns the type of the named global, or nil.
func (t *Table) Lookup(name string) types.Type {
	for _, g := range t.Globals {
		if g.Name == name {
			return g.Type
		}
	}
	return nil
}

// Default returns the built-in table.
func Default() (*Table, error) {
	return LoadTable(bytes.NewReader(defaultTable))
}

type tableFile struct {
	Version string       `json:"version"`
	Runtime string       `json:"runtime"`
	Globals []globalDesc `json:"globals"`
}

type globalDesc struct {
	Name string   `json:"name"`
	Type typeDesc `json:"type"`
}

// typeDesc is a type in the table: either one of the names "number",
// "int", "string", "bool" and "?", or an object with exactly one of the
// keys "fn", "struct" and "array".
type typeDesc struct {
	Name   string
	Fn     *fnDesc
	Struct []globalDesc
	Array  *typeDesc
}

type fnDesc struct {
	Params []globalDesc `json:"params"`
	Result *typeDesc    `json:"result"`
}

func (d *typeDesc) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &d.Name)
	}
	var obj struct {
		Fn     *fnDesc      `json:"fn"`
		Struct []globalDesc `json:"struct"`
		Array  *typeDesc    `json:"array"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	d.Fn, d.Struct, d.Array = obj.Fn, obj.Struct, obj.Array
	return nil
}

// LoadTable decodes a signature table.
func LoadTable(r io.Reader) (*Table, error) {
	var f tableFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decoding signature table")
	}
	if f.Runtime != "" {
		if _, err := semver.NewConstraint(f.Runtime); err != nil {
			return nil, errors.Wrapf(err, "signature table runtime constraint %q", f.Runtime)
		}
	}

	t := &Table{Version: f.Version, Runtime: f.Runtime}
	seen := make(map[string]bool)
	for _, g := range f.Globals {
		if g.Name == "" {
			return nil, errors.New("signature table: global without a name")
		}
		if seen[g.Name] {
			return nil, errors.Errorf("signature table: %s declared twice", g.Name)
		}
		seen[g.Name] = true
		typ, err := g.Type.resolve()
		if err != nil {
			return nil, errors.Wrapf(err, "signature table: %s", g.Name)
		}
		t.Globals = append(t.Globals, infer.Global{Name: g.Name, Type: typ})
	}
	return t, nil
}

// resolve converts a table type to a type.
func (d *typeDesc) resolve() (types.Type, error) {
	switch {
	case d.Fn != nil:
		params := make([]*types.Var, len(d.Fn.Params))
		for i, p := range d.Fn.Params {
			typ, err := p.Type.resolve()
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %s", p.Name)
			}
			params[i] = types.NewParam(noPos, p.Name, typ)
		}
		var result types.Type
		if d.Fn.Result != nil {
			typ, err := d.Fn.Result.resolve()
			if err != nil {
				return nil, errors.Wrap(err, "result")
			}
			result = typ
		}
		return types.NewFunc(params, result), nil

	case d.Struct != nil:
		fields := make([]*types.Var, len(d.Struct))
		for i, f := range d.Struct {
			typ, err := f.Type.resolve()
			if err != nil {
				return nil, errors.Wrapf(err, "field %s", f.Name)
			}
			fields[i] = types.NewField(noPos, f.Name, typ)
		}
		return types.NewStruct(fields), nil

	case d.Array != nil:
		elem, err := d.Array.resolve()
		if err != nil {
			return nil, errors.Wrap(err, "element")
		}
		return types.NewArray(elem), nil
	}

	switch d.Name {
	case "number":
		return types.Typ[types.Num], nil
	case "int":
		return types.Typ[types.Int], nil
	case "string":
		return types.Typ[types.Str], nil
	case "bool":
		return types.Typ[types.Bool], nil
	case "?":
		return types.Typ[types.Dynamic], nil
	}
	return nil, errors.Errorf("unknown type %q", d.Name)
}

var versionDefine = regexp.MustCompile(`(?m)^\s*#\s*define\s+GUM_RUNTIME_VERSION\s+"([^"]+)"`)

// RuntimeVersion extracts GUM_RUNTIME_VERSION from the text of a runtime
// header.
func RuntimeVersion(header []byte) (*semver.Version, error) {
	m := versionDefine.FindSubmatch(header)
	if m == nil {
		return nil, errors.New("runtime header does not define GUM_RUNTIME_VERSION")
	}
	v, err := semver.NewVersion(string(m[1]))
	if err != nil {
		return nil, errors.Wrap(err, "runtime header version")
	}
	return v, nil
}

// CheckRuntime verifies that a runtime header satisfies the table's
// runtime constraint and returns the header's version.
func (t *Table) CheckRuntime(header []byte) (*semver.Version, error) {
	v, err := RuntimeVersion(header)
	if err != nil {
		return nil, err
	}
	if t.Runtime == "" {
		return v, nil
	}
	c, err := semver.NewConstraint(t.Runtime)
	if err != nil {
		return nil, errors.Wrapf(err, "runtime constraint %q", t.Runtime)
	}
	if ok, errs := c.Validate(v); !ok {
		if len(errs) > 0 {
			return v, errors.Wrapf(errs[0], "runtime %s does not satisfy %s", v, t.Runtime)
		}
		return v, errors.Errorf("runtime %s does not satisfy %s", v, t.Runtime)
	}
	return v, nil
}
