// chasebench plays many matches in parallel with two hunter configurations, on the same levels and
// seeds, and compares their capture rate and the number of turns they take.
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/janpfeifer/chaseGo/internal/match"
	"github.com/janpfeifer/chaseGo/internal/profilers"
	"github.com/janpfeifer/chaseGo/internal/ui/spinning"
	"github.com/janpfeifer/chaseGo/levels"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagConfig1 = flag.String("config1", "astar", "1st hunter configuration.")
	flagConfig2 = flag.String("config2", "wanderer", "2nd hunter configuration.")
	flagLevels  = flag.String("levels", strings.Join(levels.Names(), ","),
		"Comma-separated built-in level names or level files to play.")
	flagNumMatches  = flag.Int("num_matches", 100, "Number of matches per level and configuration.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagMaxTurns = flag.Int("max_turns", 0, "If > 0, overrides the levels' max_turns.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	spinning.SafeInterrupt(cancel, 5*time.Second)

	profiler := must.M1(profilers.Setup(ctx))
	defer profiler.OnQuit()

	var levelList []*match.Level
	for _, name := range strings.Split(*flagLevels, ",") {
		level := must.M1(levels.Load(strings.TrimSpace(name)))
		if *flagMaxTurns > 0 {
			level.MaxTurns = *flagMaxTurns
		}
		levelList = append(levelList, level)
	}
	configs := [2]string{*flagConfig1, *flagConfig2}
	tally := newTally(configs, levelList, *flagNumMatches)
	spinner := spinning.New(ctx, 250*time.Millisecond, tally.Progress)
	err := runMatches(ctx, tally, levelList)
	spinner.Done()
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
	} else if err != nil {
		klog.Exitf("Failed: %+v", err)
	}
	fmt.Println(tally)
}

func getParallelism() int {
	if *flagParallelism > 0 {
		return *flagParallelism
	}
	return runtime.GOMAXPROCS(0)
}

// runMatches plays num_matches per level and configuration. Both configurations play matches
// with the same ids, hence the same random walks for the prey.
func runMatches(ctx context.Context, tally *Tally, levelList []*match.Level) error {
	var g errgroup.Group
	g.SetLimit(getParallelism())
	for levelIdx, level := range levelList {
		for matchIdx := range tally.numMatches {
			for configIdx, config := range tally.configs {
				g.Go(func() error {
					if ctx.Err() != nil {
						return nil
					}
					id := uint64(levelIdx*tally.numMatches + matchIdx)
					m, err := match.New(id, level, config)
					if err != nil {
						return errors.WithMessagef(err, "configuration #%d", configIdx+1)
					}
					result, err := m.Run(ctx)
					if err != nil {
						// Interrupted: partial results are not recorded.
						klog.V(1).Infof("%v", err)
						return nil
					}
					tally.Record(configIdx, result)
					return nil
				})
			}
		}
	}
	return g.Wait()
}
