package liquidtest

import (
	"io/ioutil"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

var (
	protoMessage = regexp.MustCompile(`(?m)^message (\w+) \{\n((?:[^}]*\n)*?)\}`)
	protoField   = regexp.MustCompile(`^\s*(repeated\s+)?([\w.]+)\s+(\w+)\s*=\s*(\d+)`)
)

type protoDecl struct {
	repeated bool
	kind     string
	number   string
}

// AssertCodec fails the test if the protobuf tags of given models do not
// match the message declarations of the codec.proto file at path. Every
// model must be declared with the same field names, numbers and
// cardinality. Scalar types are compared by wire type only.
func AssertCodec(t testing.TB, path string, models ...interface{}) {
	t.Helper()

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read %s: %s", path, err)
	}
	declared := make(map[string]map[string]protoDecl)
	for _, m := range protoMessage.FindAllStringSubmatch(string(raw), -1) {
		fields := make(map[string]protoDecl)
		for _, line := range strings.Split(m[2], "\n") {
			f := protoField.FindStringSubmatch(line)
			if f == nil {
				continue
			}
			fields[f[3]] = protoDecl{repeated: f[1] != "", kind: f[2], number: f[4]}
		}
		declared[m[1]] = fields
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		fields, ok := declared[typ.Name()]
		if !ok {
			t.Errorf("%s: message %s is not declared", path, typ.Name())
			continue
		}
		tagged := 0
		for i := 0; i < typ.NumField(); i++ {
			tag, ok := typ.Field(i).Tag.Lookup("protobuf")
			if !ok {
				continue
			}
			tagged++
			// Tag format is wire,number,cardinality[,packed],name=...
			parts := strings.Split(tag, ",")
			var name string
			for _, p := range parts {
				if strings.HasPrefix(p, "name=") {
					name = strings.TrimPrefix(p, "name=")
				}
			}
			decl, ok := fields[name]
			if !ok {
				t.Errorf("%s: %s.%s is not declared", path, typ.Name(), name)
				continue
			}
			if decl.number != parts[1] {
				t.Errorf("%s: %s.%s has number %s, tag says %s", path, typ.Name(), name, decl.number, parts[1])
			}
			if decl.repeated != (parts[2] == "rep") {
				t.Errorf("%s: %s.%s repeated mismatch", path, typ.Name(), name)
			}
			if wireType(decl.kind) != parts[0] {
				t.Errorf("%s: %s.%s is %s, tag says %s", path, typ.Name(), name, decl.kind, parts[0])
			}
		}
		if tagged != len(fields) {
			t.Errorf("%s: %s declares %d fields, model has %d", path, typ.Name(), len(fields), tagged)
		}
	}
}

func wireType(kind string) string {
	switch kind {
	case "int32", "int64", "uint32", "uint64", "bool", "sint32", "sint64":
		return "varint"
	case "fixed64", "sfixed64", "double":
		return "fixed64"
	case "fixed32", "sfixed32", "float":
		return "fixed32"
	default:
		// string, bytes and embedded messages
		return "bytes"
	}
}
