// Command roguecore drives one episode of the dungeon crawler from a
// configuration file and a scripted sequence of keys, printing the
// resulting status and, on request, the saved input log as JSON.
// Grounded on dungeongen's flag-based CLI shape (flag.*, fmt.Fprintf
// error reporting, -version/-help/-verbose).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/observe"
	"github.com/rogue-core/roguecore/pkg/runtime"
)

const version = "0.1.0"

var (
	configPath = flag.String("config", "", "Path to a YAML or JSON configuration file (required)")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	actions    = flag.String("actions", "", "Keys to replay in order, one key per character (e.g. \"hhjjl>\")")
	maxSteps   = flag.Int("max-steps", 1000, "Stop the episode after this many steps even if the player is alive")
	dumpInputs = flag.Bool("dump-inputs", false, "Print the saved input log as JSON after the run")
	verbose    = flag.Bool("verbose", false, "Print the map and status after every step")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("roguecore version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required")
		printUsage()
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
		printState(ep)
	}

	done := false
	for _, r := range *actions {
		done, err = ep.React(runtime.Char(r))
		if err != nil {
			return fmt.Errorf("step on key %q failed: %w", r, err)
		}
		if *verbose {
			printState(ep)
		}
		if done {
			break
		}
	}

	status := ep.State.Status
	fmt.Printf("Steps: %d\n", ep.Steps)
	fmt.Printf("Dungeon level: %d  Gold: %d  HP: %d/%d\n",
		status.DungeonLevel, status.Gold, status.HP.Current, status.HP.Max)
	if done && ep.State.IsTerminal {
		fmt.Println("The player has died.")
	}

	if *dumpInputs {
		raw, err := rt.SavedInputsAsJSON()
		if err != nil {
			return fmt.Errorf("failed to dump saved inputs: %w", err)
		}
		fmt.Println(raw)
	}
	return nil
}

func printState(ep *observe.Episode) {
	for _, row := range ep.State.DungeonStr() {
		fmt.Println(row)
	}
	fmt.Println(ep.State.Status)
	fmt.Println()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: roguecore -config <config.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'roguecore -help' for detailed help")
}

func printHelp() {
	fmt.Printf("roguecore version %s\n\n", version)
	fmt.Println("Replays a scripted key sequence against a deterministic dungeon episode.")
	fmt.Println("\nUsage:")
	fmt.Println("  roguecore -config <config.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to a YAML or JSON configuration file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -seed uint")
	fmt.Println("        Override the seed from config (0 = use config seed)")
	fmt.Println("  -actions string")
	fmt.Println("        Keys to replay, one key per character (e.g. \"hhjjl>\")")
	fmt.Println("  -max-steps int")
	fmt.Println("        Stop the episode after this many steps (default 1000)")
	fmt.Println("  -dump-inputs")
	fmt.Println("        Print the saved input log as JSON after the run")
	fmt.Println("  -verbose")
	fmt.Println("        Print the map and status after every step")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  roguecore -config dungeon.yaml -actions \"hhjjl\"")
	fmt.Println("  roguecore -config dungeon.yaml -seed 12345 -verbose -dump-inputs")
}
