package cmd

import (
	"strings"
	"testing"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestInitConfigDoesNotPanic(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = false
	initConfig()

	// Quiet takes precedence over debug
	quietMode = true
	initConfig()
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"diff", "check", "clean"} {
		if !names[want] {
			t.Errorf("subcommand %q not registered", want)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	SetVersionInfo("1.2.3", "abc1234", "2026-01-02")
	got := versionTemplate()
	for _, want := range []string{"rift 1.2.3", "abc1234", "2026-01-02"} {
		if !strings.Contains(got, want) {
			t.Errorf("versionTemplate() = %q, missing %q", got, want)
		}
	}

	SetVersionInfo("dev", "none", "unknown")
	got = versionTemplate()
	if got != "rift dev\n" {
		t.Errorf("versionTemplate() without commit = %q, want %q", got, "rift dev\n")
	}
}
