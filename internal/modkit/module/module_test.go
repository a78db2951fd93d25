package module

import (
	"strings"
	"testing"

	phttp "unirank/internal/platform/net/http"
	kit "unirank/internal/platform/testkit"
)

type Clearer interface{ ClearAll() int }

type clearer struct{ n int }

func (c clearer) ClearAll() int { return c.n }

type fakeModule struct {
	name  string
	ports any
}

func (fakeModule) MountRoutes(phttp.Router) {}
func (f fakeModule) Ports() any             { return f.ports }
func (f fakeModule) Name() string           { return f.name }

type loaderPorts struct {
	Year    int
	Clearer Clearer
	hidden  Clearer
}

func TestPortsOf(t *testing.T) {
	cases := []struct {
		name  string
		ports any
		want  int
		found bool
	}{
		{"value implements", clearer{n: 3}, 3, true},
		{"exported field", loaderPorts{Year: 2024, Clearer: clearer{n: 5}}, 5, true},
		{"unexported field ignored", loaderPorts{hidden: clearer{n: 9}}, 0, false},
		{"nil ports", nil, 0, false},
		{"scalar ports", 42, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[Clearer](fakeModule{ports: tc.ports})
			if ok != tc.found {
				t.Fatalf("found = %v want %v", ok, tc.found)
			}
			if ok && got.ClearAll() != tc.want {
				t.Fatalf("ClearAll = %d want %d", got.ClearAll(), tc.want)
			}
		})
	}
}

func TestMustPortsOf_PanicNamesModule(t *testing.T) {
	m := fakeModule{name: "loader", ports: loaderPorts{Year: 2024}}
	if got := MustPortsOf[loaderPorts](m); got.Year != 2024 {
		t.Fatalf("struct ports = %+v", got)
	}

	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "loader") || !strings.Contains(msg, "requested port not found") {
			t.Fatalf("panic message = %q", msg)
		}
	}()
	_ = MustPortsOf[Clearer](m)
	t.Fatalf("expected panic")
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("loader", loaderPorts{Year: 2023})
	Register("loader", loaderPorts{Year: 2024})

	got, ok := PortsAs[loaderPorts]("loader")
	if !ok || got.Year != 2024 {
		t.Fatalf("PortsAs = %+v ok=%v", got, ok)
	}
	if _, ok := PortsAs[Clearer]("loader"); ok {
		t.Fatalf("wrong type should miss")
	}
	if _, ok := PortsAs[loaderPorts]("meta"); ok {
		t.Fatalf("unknown name should miss")
	}

	Reset()
	if _, ok := PortsAs[loaderPorts]("loader"); ok {
		t.Fatalf("Reset should clear")
	}
	kit.MustPanic(t, func() { _ = MustPortsOf[Clearer](fakeModule{name: "meta"}) })
}
