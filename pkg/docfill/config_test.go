package docfill

import "testing"

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", c.LogLevel)
	}
	if c.CleanEmptyFragments {
		t.Error("CleanEmptyFragments should default to false")
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("AGREEMDIR_LOG_LEVEL", "debug")
	t.Setenv("AGREEMDIR_CLEAN_EMPTY_FRAGMENTS", "true")

	c := ConfigFromEnvironment()
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", c.LogLevel)
	}
	if !c.CleanEmptyFragments {
		t.Error("CleanEmptyFragments = false, want true")
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "0", "false", "off", "nope"} {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true, want false", s)
		}
	}
}
