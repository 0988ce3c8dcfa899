package plugin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	name    string
	initErr error
	log     *[]string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Initialize(EditorAPI) error {
	*r.log = append(*r.log, "init "+r.name)
	return r.initErr
}

func (r *recorder) Shutdown() error {
	*r.log = append(*r.log, "shutdown "+r.name)
	return nil
}

func TestLifecycleOrder(t *testing.T) {
	var log []string
	m := NewManager()
	for _, p := range []*recorder{
		{name: "b", log: &log},
		{name: "a", log: &log},
		{name: "broken", initErr: errors.New("boom"), log: &log},
	} {
		if err := m.Register(p); err != nil {
			t.Fatal(err)
		}
	}

	m.InitializePlugins(nil)
	m.ShutdownPlugins()
	m.ShutdownPlugins()

	want := []string{"init a", "init b", "init broken", "shutdown b", "shutdown a"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("lifecycle (-want +got):\n%s", diff)
	}
}

func TestRegisterRejectsDuplicatesAndEmptyNames(t *testing.T) {
	var log []string
	m := NewManager()
	if err := m.Register(&recorder{name: "x", log: &log}); err != nil {
		t.Fatal(err)
	}
	if err := m.Register(&recorder{name: "x", log: &log}); err == nil {
		t.Error("duplicate name should be rejected")
	}
	if err := m.Register(&recorder{log: &log}); err == nil {
		t.Error("empty name should be rejected")
	}
	if _, ok := m.GetPlugin("x"); !ok {
		t.Error("GetPlugin(x) should find the plugin")
	}
}
