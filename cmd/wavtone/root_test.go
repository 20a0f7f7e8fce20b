package main

import (
	"bytes"
	"testing"

	"github.com/example/go-wavtone/internal/config"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"generate", "formats", "doctor", "bench", "serve", "health"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"config", "log-level", "format", "duration", "sample-rate", "channels", "out-dir"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s persistent flag to be registered", name)
		}
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	// Should not panic on invalid level.
	setupLogger("not-a-level")
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	orig, origLoaded := activeCfg, cfgLoaded

	t.Cleanup(func() { activeCfg, cfgLoaded = orig, origLoaded })

	activeCfg = config.DefaultConfig()
	cfgLoaded = false

	_, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	orig, origLoaded := activeCfg, cfgLoaded

	t.Cleanup(func() { activeCfg, cfgLoaded = orig, origLoaded })

	activeCfg = config.DefaultConfig()
	activeCfg.Tone.SampleRate = 0
	cfgLoaded = true

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Tone.SampleRate != 0 {
		t.Errorf("unexpected SampleRate: %v", got.Tone.SampleRate)
	}
}
