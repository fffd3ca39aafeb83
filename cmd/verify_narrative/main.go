// Package main drives the narrative phase machine headlessly and prints the
// resulting timeline, so that timing changes in data/narrative.yaml can be
// checked without opening a window.
//
// Usage:
//
//	go run ./cmd/verify_narrative [flags]
//
// Flags:
//
//	--config <path>     Narrative config file (default: built-in defaults)
//	--mode <mode>       thanksHold advance mode override: timer | animation
//	--survey <id>       Survey answer to submit once the prompt is shown (default: "yes")
//	--revote-at <ms>    Submit a second feed vote at this time to check idempotency (-1 disables)
//	--step <ms>         Simulation step (default: 10)
//	--verbose           Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/ecs"
	"github.com/decker502/buyornot/pkg/systems"
)

var (
	configFlag  = flag.String("config", "", "Narrative config file")
	modeFlag    = flag.String("mode", "", "thanksHold advance mode override (timer | animation)")
	surveyFlag  = flag.String("survey", "yes", "Survey answer")
	revoteFlag  = flag.Int("revote-at", 1200, "Second feed vote time in ms (-1 disables)")
	stepFlag    = flag.Int("step", 10, "Simulation step in ms")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// limit 模拟的最长时间
const limit = 30 * time.Second

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadNarrativeConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *modeFlag != "" {
		cfg.Timings.ThanksHoldAdvance = *modeFlag
	}

	if err := run(os.Stdout, cfg, time.Duration(*stepFlag)*time.Millisecond); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, cfg *config.NarrativeConfig, step time.Duration) error {
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %v", step)
	}

	em := ecs.NewEntityManager()
	scheduler := systems.NewTimerScheduler()
	defer scheduler.Close()

	phases, err := systems.NewNarrativePhaseSystem(em, scheduler, cfg.Timings)
	if err != nil {
		return err
	}
	fades := systems.NewFadeLayerSystem(em, cfg.Fade, phases.Snapshot().Layers)
	fades.SetOnSettled(func(layer components.LayerID, value float64) {
		if layer == components.LayerThanks && value >= 1 {
			phases.NotifyAnimationComplete()
		}
	})

	phases.SetOnPhaseChange(func(from, to components.NarrativePhase) {
		fmt.Fprintf(out, "%6dms  phase   %-16s -> %s\n", scheduler.Now().Milliseconds(), from, to)
	})
	phases.SetOnSurveyChange(func(from, to components.SurveyPhase) {
		fmt.Fprintf(out, "%6dms  survey  %-16s -> %s\n", scheduler.Now().Milliseconds(), from, to)
	})

	fmt.Fprintf(out, "timings: %v (thanksHold advance: %s)\n", cfg.Timings.Durations(), cfg.Timings.ThanksHoldAdvance)

	feedOption := "1"
	if len(cfg.Texts.FeedOptions) > 0 {
		feedOption = cfg.Texts.FeedOptions[0].ID
	}
	phases.OnVote(components.SceneFeedVote, feedOption)

	revoteAt := time.Duration(*revoteFlag) * time.Millisecond
	revoted := *revoteFlag < 0
	surveyed := false

	for scheduler.Now() < limit {
		if !revoted && scheduler.Now() >= revoteAt {
			revoted = true
			before := phases.PendingTimers()
			accepted := phases.OnVote(components.SceneFeedVote, feedOption)
			fmt.Fprintf(out, "%6dms  revote  accepted=%v pending %d -> %d\n", scheduler.Now().Milliseconds(), accepted, before, phases.PendingTimers())
		}

		snap := phases.Snapshot()
		if !surveyed && snap.SurveyInteractive {
			surveyed = true
			phases.OnVote(components.SceneSurveyVote, *surveyFlag)
		}
		if snap.SurveyPhase == components.SurveyResult {
			fmt.Fprintf(out, "%6dms  done    survey=%s pending=%d\n", scheduler.Now().Milliseconds(), snap.SurveySelection, phases.PendingTimers())
			return nil
		}

		scheduler.Advance(step)
		fades.SetTargets(phases.Snapshot().Layers)
		fades.Update(step.Seconds())
	}
	return fmt.Errorf("narrative did not finish within %v (stuck in %s)", limit, phases.Phase())
}
