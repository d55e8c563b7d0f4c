// Command roguesvg replays a scripted key sequence against a
// deterministic dungeon episode and saves the final screen as an SVG
// tile grid. Grounded on dungeongen's flag-based CLI shape and on
// pkg/export/svg.go's SaveSVGToFile naming, rewritten over
// pkg/svgmap's tile-grid renderer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/observe"
	"github.com/rogue-core/roguecore/pkg/runtime"
	"github.com/rogue-core/roguecore/pkg/svgmap"
)

const version = "0.1.0"

var (
	configPath = flag.String("config", "", "Path to a YAML or JSON configuration file (required)")
	outputPath = flag.String("output", "dungeon.svg", "Path to write the SVG file")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	actions    = flag.String("actions", "", "Keys to replay before rendering, one key per character")
	maxSteps   = flag.Int("max-steps", 1000, "Stop the episode after this many steps even if the player is alive")
	cellSize   = flag.Int("cell-size", 16, "Pixel size of one map cell")
	showGrid   = flag.Bool("grid", false, "Draw faint gridlines between cells")
	title      = flag.String("title", "Dungeon", "Title drawn above the map")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("roguesvg version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required")
		fmt.Fprintln(os.Stderr, "\nRun 'roguesvg -help' for detailed help")
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := dungeoncfg.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *seedFlag != 0 {
		if *verbose {
			fmt.Printf("Overriding seed with %d\n", *seedFlag)
		}
		cfg.Seed = dungeoncfg.NewSeedFromUint64(*seedFlag)
	}

	rt, err := runtime.New(*cfg)
	if err != nil {
		return fmt.Errorf("failed to start episode: %w", err)
	}
	ep, err := observe.NewEpisode(rt, *maxSteps)
	if err != nil {
		return fmt.Errorf("failed to snapshot initial screen: %w", err)
	}

	if *verbose {
		fmt.Printf("Replaying %d action(s)\n", len(*actions))
	}
	for _, r := range *actions {
		done, err := ep.React(runtime.Char(r))
		if err != nil {
			return fmt.Errorf("step on key %q failed: %w", r, err)
		}
		if done {
			break
		}
	}

	opts := svgmap.DefaultOptions()
	opts.CellSize = *cellSize
	opts.ShowGrid = *showGrid
	opts.Title = *title

	if err := svgmap.SaveSVGToFile(ep.State, *outputPath, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if *verbose {
		info, statErr := os.Stat(*outputPath)
		if statErr == nil {
			fmt.Printf("Wrote %d bytes to %s\n", info.Size(), *outputPath)
		}
	} else {
		fmt.Printf("Wrote %s\n", *outputPath)
	}
	return nil
}

func printHelp() {
	fmt.Printf("roguesvg version %s\n\n", version)
	fmt.Println("Replays a scripted key sequence and saves the final screen as SVG.")
	fmt.Println("\nUsage:")
	fmt.Println("  roguesvg -config <config.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to a YAML or JSON configuration file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Path to write the SVG file (default: dungeon.svg)")
	fmt.Println("  -seed uint")
	fmt.Println("        Override the seed from config (0 = use config seed)")
	fmt.Println("  -actions string")
	fmt.Println("        Keys to replay before rendering, one key per character")
	fmt.Println("  -max-steps int")
	fmt.Println("        Stop the episode after this many steps (default 1000)")
	fmt.Println("  -cell-size int")
	fmt.Println("        Pixel size of one map cell (default 16)")
	fmt.Println("  -grid")
	fmt.Println("        Draw faint gridlines between cells")
	fmt.Println("  -title string")
	fmt.Println("        Title drawn above the map (default \"Dungeon\")")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  roguesvg -config dungeon.yaml -output start.svg")
	fmt.Println("  roguesvg -config dungeon.yaml -actions \"hhjjl\" -output after.svg -grid")
}
