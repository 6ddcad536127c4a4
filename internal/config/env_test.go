package config

import (
	"reflect"
	"strings"
	"testing"
)

type envSample struct {
	Name  string `yaml:"name" env:"S_NAME"`
	Limit struct {
		Count int      `yaml:"count" env:"S_COUNT"`
		Ratio float64  `yaml:"ratio" env:"S_RATIO"`
		On    bool     `yaml:"on" env:"S_ON"`
		Hosts []string `yaml:"hosts" env:"S_HOSTS"`
		Skip  string   `yaml:"skip"`
	} `yaml:"limit"`
}

func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestEnvOverrideWalk(t *testing.T) {
	var s envSample
	s.Limit.Skip = "kept"
	o := &envOverride{lookup: fakeEnv(map[string]string{
		"S_NAME":  "hub",
		"S_COUNT": " 12 ",
		"S_RATIO": "0.5",
		"S_ON":    "true",
		"S_HOSTS": "a, ,b",
	})}
	if err := o.walk(reflect.ValueOf(&s), ""); err != nil {
		t.Fatalf("walk: %v", err)
	}

	if s.Name != "hub" || s.Limit.Count != 12 || s.Limit.Ratio != 0.5 || !s.Limit.On {
		t.Errorf("values = %+v", s)
	}
	if strings.Join(s.Limit.Hosts, "|") != "a|b" {
		t.Errorf("hosts = %v, want [a b]", s.Limit.Hosts)
	}
	if s.Limit.Skip != "kept" {
		t.Errorf("untagged field changed: %q", s.Limit.Skip)
	}
	want := []string{"S_NAME", "S_COUNT", "S_RATIO", "S_ON", "S_HOSTS"}
	if !reflect.DeepEqual(o.applied, want) {
		t.Errorf("applied = %v, want %v", o.applied, want)
	}
}

func TestEnvOverrideErrorNamesYAMLPath(t *testing.T) {
	var s envSample
	o := &envOverride{lookup: fakeEnv(map[string]string{"S_COUNT": "lots"})}
	err := o.walk(reflect.ValueOf(&s), "")
	if err == nil {
		t.Fatal("walk succeeded, want error")
	}
	if !strings.Contains(err.Error(), "limit.count") || !strings.Contains(err.Error(), "S_COUNT") {
		t.Errorf("error = %q, want the yaml path and the variable", err)
	}
}
