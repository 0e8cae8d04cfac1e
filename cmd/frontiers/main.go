// frontiers loads a map_server map, searches it for frontiers from the given
// robot position and prints them ranked by cost.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/LdDl/explore-go/costmap"
	"github.com/LdDl/explore-go/frontier"
)

var (
	flagMap       = flag.String("map", "", "map_server YAML file describing the occupancy image.")
	flagConfig    = flag.String("config", "", "YAML file with search parameters. Defaults are used when empty.")
	flagX         = flag.Float64("x", 0, "Robot X position, world units.")
	flagY         = flag.Float64("y", 0, "Robot Y position, world units.")
	flagSeed      = flag.Uint64("seed", 0, "Seed for the cost noise. Zero draws a fresh seed.")
	flagBlacklist = flag.String("blacklist", "", "Goals to skip, as \"x,y;x,y\".")
	flagPlot      = flag.String("plot", "", "If set, a PNG scatter of the map and frontiers is written there.")
	flagRender    = flag.Bool("render", true, "Print the map with ranked frontiers.")
	flagColor     = flag.Bool("color", true, "Color the rendered map when stdout is a terminal.")
	flagTop       = flag.Int("top", 10, "Number of frontiers to list. Zero lists all.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagMap == "" {
		klog.Fatal("You must provide the map with -map")
	}
	cfg := frontier.DefaultConfig()
	if *flagConfig != "" {
		cfg = must.M1(frontier.LoadConfig(*flagConfig))
	}
	grid := must.M1(costmap.LoadMapServer(*flagMap))
	klog.V(1).Infof("Loaded %dx%d map, resolution %.3f", grid.SizeInCellsX(), grid.SizeInCellsY(), grid.Resolution())

	seed := *flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	search := frontier.NewSearch(grid, cfg, frontier.WithRandSource(rand.NewPCG(seed, seed)))
	robot := frontier.NewPoint(*flagX, *flagY)
	frontiers, err := search.SearchWithLock(grid.Mutex(), robot)
	if err != nil {
		klog.Exitf("Search failed: %+v", err)
	}

	tracker := frontier.NewTrackerDefault()
	tracker.SetBlacklistTolerance(5 * grid.Resolution())
	for _, goal := range must.M1(parseGoals(*flagBlacklist)) {
		tracker.Blacklist(goal)
	}
	frontiers = tracker.FilterBlacklisted(frontiers)

	if *flagRender {
		color := *flagColor && term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Println(renderMap(grid, frontiers, robot, color))
	}
	printTable(frontiers, *flagTop)
	if *flagPlot != "" {
		must.M(plotFrontiers(*flagPlot, grid, frontiers, robot))
		klog.Infof("Plot saved to %q", *flagPlot)
	}
}

// parseGoals parses "x,y;x,y" into points
func parseGoals(s string) ([]frontier.Point, error) {
	goals := make([]frontier.Point, 0)
	if strings.TrimSpace(s) == "" {
		return goals, nil
	}
	for _, pair := range strings.Split(s, ";") {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, errors.Errorf("invalid goal %q, expected \"x,y\"", pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid X in goal %q", pair)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid Y in goal %q", pair)
		}
		goals = append(goals, frontier.NewPoint(x, y))
	}
	return goals, nil
}

func printTable(frontiers []frontier.Frontier, top int) {
	if len(frontiers) == 0 {
		fmt.Println("No frontiers found.")
		return
	}
	if top <= 0 || top > len(frontiers) {
		top = len(frontiers)
	}
	fmt.Printf("%4s  %-8s  %5s  %-20s  %-20s  %8s  %10s\n", "rank", "id", "size", "centroid", "middle", "min dist", "cost")
	for i, f := range frontiers[:top] {
		fmt.Printf("%4d  %-8s  %5d  %-20s  %-20s  %8.3f  %10.4f\n",
			i, f.ID.String()[:8], f.Size,
			fmt.Sprintf("(%.2f, %.2f)", f.Centroid.X, f.Centroid.Y),
			fmt.Sprintf("(%.2f, %.2f)", f.Middle.X, f.Middle.Y),
			f.MinDistance, f.Cost)
	}
	if top < len(frontiers) {
		fmt.Printf("... %d more\n", len(frontiers)-top)
	}
}
