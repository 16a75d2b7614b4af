package rtabi

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

// readHeader loads runtime/gum.h from the repository.
func readHeader(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../runtime/gum.h")
	if err != nil {
		t.Fatalf("reading runtime header: %v", err)
	}
	return string(data)
}

func TestHeaderDeclaresRuntime(t *testing.T) {
	if missing := Missing([]byte(readHeader(t))); len(missing) > 0 {
		t.Errorf("gum.h lacks %s", strings.Join(missing, ", "))
	}
}

func TestMissing(t *testing.T) {
	header := readHeader(t)
	tests := []struct {
		name string
		drop string // declaration removed from the header
		want string
	}{
		{"function", "bool JSString_TRUTHY(char *s);", TruthyString},
		{"macro", "#define JS_BOOL(X)", BoxBool},
		{"constant", "extern const JSValue JS_NULL;", Null},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(header, tt.drop) {
				t.Fatalf("gum.h has no %q", tt.drop)
			}
			stripped := strings.Replace(header, tt.drop, "", 1)
			missing := Missing([]byte(stripped))
			if len(missing) != 1 || missing[0] != tt.want {
				t.Errorf("Missing() = %v, want [%s]", missing, tt.want)
			}
		})
	}
}

func TestTagsMatchHeader(t *testing.T) {
	header := readHeader(t)
	tags := map[string]int{
		"JS_INVALID_TAG":   TagInvalid,
		"JS_UNDEFINED_TAG": TagUndefined,
		"JS_NULL_TAG":      TagNull,
		"JS_NUMBER_TAG":    TagNumber,
		"JS_STRING_TAG":    TagString,
		"JS_BOOL_TAG":      TagBool,
		"JS_FUNCTION_TAG":  TagFunction,
		"JS_OBJECT_TAG":    TagObject,
		"JS_ARRAY_TAG":     TagArray,
	}
	for name, value := range tags {
		want := fmt.Sprintf("#define %s %d", name, value)
		if !strings.Contains(header, want) {
			t.Errorf("gum.h lacks %q", want)
		}
	}
}
