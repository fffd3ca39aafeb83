package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/decker502/buyornot/pkg/config"
)

func TestRunTimeline(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{"timer", config.AdvanceByTimer},
		{"animation", config.AdvanceByAnimation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultNarrativeConfig()
			cfg.Timings.ThanksHoldAdvance = tt.mode

			var out bytes.Buffer
			if err := run(&out, cfg, 10*time.Millisecond); err != nil {
				t.Fatalf("run: %v\n%s", err, out.String())
			}
			s := out.String()
			for _, want := range []string{"-> whiteout", "-> nextSceneSteady", "-> result", "revote  accepted=false", "done"} {
				if !strings.Contains(s, want) {
					t.Errorf("output missing %q:\n%s", want, s)
				}
			}
		})
	}
}

func TestRunRejectsBadStep(t *testing.T) {
	if err := run(&bytes.Buffer{}, config.DefaultNarrativeConfig(), 0); err == nil {
		t.Error("expected error for zero step")
	}
}
