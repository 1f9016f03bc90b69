// chase plays one match, printing the grid at every turn.
//
// Example:
//
//	$ go run ./cmd/chase -level=maze -config="astar:sight=8" -delay=100ms
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/janpfeifer/chaseGo/internal/agents"
	"github.com/janpfeifer/chaseGo/internal/match"
	"github.com/janpfeifer/chaseGo/internal/profilers"
	"github.com/janpfeifer/chaseGo/internal/ui/cli"
	"github.com/janpfeifer/chaseGo/internal/ui/spinning"
	"github.com/janpfeifer/chaseGo/levels"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagLevel = flag.String("level", "maze", "Name of a built-in level ("+
		strings.Join(levels.Names(), ", ")+") or path to a level YAML file.")
	flagConfig = flag.String("config", "", "If set, configuration used for all hunters, "+
		"instead of the ones in the level. E.g.: \"astar:sight=8,chase_radius=6\".")
	flagMaxTurns = flag.Int("max_turns", 0, "If > 0, overrides the level's max_turns.")
	flagMatchID  = flag.Uint64("match_id", 0, "Seeds the random walks: matches with the same id are identical.")
	flagQuiet    = flag.Bool("quiet", false, "Only print the result of the match.")
	flagDelay    = flag.Duration("delay", 200*time.Millisecond, "Delay between turns when printing the match.")
	flagColor    = flag.Bool("color", true, "Print grids with colors.")
	flagPath     = flag.Bool("path", true, "Overlay the planned path of the hunters.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	spinning.SafeInterrupt(cancel, 3*time.Second)

	profiler := must.M1(profilers.Setup(ctx))
	defer profiler.OnQuit()

	level := must.M1(levels.Load(*flagLevel))
	if *flagMaxTurns > 0 {
		level.MaxTurns = *flagMaxTurns
	}
	m := must.M1(match.New(*flagMatchID, level, *flagConfig))
	ui := cli.New(*flagColor)
	if !*flagQuiet {
		printTurn(ui, m)
		m.WithOnTurn(func(m *match.Match) {
			printTurn(ui, m)
			if *flagDelay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(*flagDelay):
				}
			}
		})
	}
	result, err := m.Run(ctx)
	if err != nil {
		klog.Errorf("%v", err)
	}
	fmt.Println(result)
}

// printTurn clears the screen and prints the true grid with the hunters, their plans and the prey.
func printTurn(ui *cli.UI, m *match.Match) {
	var overlays []cli.Overlay
	for ii, h := range m.Hunters() {
		hunter, ok := h.Agent.(*agents.Hunter)
		if !ok || hunter.Regime() != agents.Pursuing {
			continue
		}
		if *flagPath {
			path := hunter.Path()
			overlays = append(overlays, cli.PathOverlays(path.Positions(h.Pos))...)
		}
		overlays = append(overlays, cli.Overlay{Pos: hunter.LastSeen(), Symbol: rune('a' + ii%26), Kind: cli.OverlayLastSeen})
	}
	overlays = append(overlays, cli.Overlay{Pos: m.Prey().Pos, Symbol: 'P', Kind: cli.OverlayPrey})
	for ii, h := range m.Hunters() {
		overlays = append(overlays, cli.Overlay{Pos: h.Pos, Symbol: rune('A' + ii%26), Kind: cli.OverlayHunter})
	}

	fmt.Print("\033[H\033[2J") // Clear screen.
	fmt.Println(cli.Center(fmt.Sprintf("%s: turn %d of %d", m.Level().Name, m.Turn(), m.Level().MaxTurns)))
	ui.PrintGrid(m.Truth(), overlays...)
	for ii, h := range m.Hunters() {
		fmt.Printf("  %c %-12s %-9s at %s", 'A'+ii%26, h.Agent, h.Agent.Regime(), h.Pos)
		if hunter, ok := h.Agent.(*agents.Hunter); ok && hunter.Known() != nil {
			replans, failures := hunter.Replans()
			known := hunter.Known()
			fmt.Printf(" - learned %d cells (%d resets), %d replans (%d failed)",
				known.TotalLearned(), known.Resets(), replans, failures)
		}
		fmt.Println()
	}
}
