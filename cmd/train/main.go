// snakenet-train: trains a feed-forward network to play snake
//
// Usage:
//
//	snakenet-train --config=configs/train.yaml --episodes=50000 --hidden="10@0"
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"snakenet/agent"
	"snakenet/m"
	"snakenet/snake"
	"snakenet/utils"
)

var (
	configPath     = flag.String("config", "", "YAML config file (optional)")
	gridWidth      = flag.Int("width", 0, "Board width (overrides config)")
	gridHeight     = flag.Int("height", 0, "Board height (overrides config)")
	maxTicks       = flag.Int("max-ticks", 0, "Truncate an episode after this many ticks")
	hiddenLayers   = flag.String("hidden", "", `Hidden layers, e.g. "10@0 8@1" or "none"`)
	episodes       = flag.Int("episodes", 0, "Number of training episodes")
	learningRate   = flag.Float64("lr", 0, "Learning rate")
	discountFactor = flag.Float64("discount", 0, "Discount factor applied to the episode score")
	seed           = flag.Uint64("seed", 0, "Random seed")
	logEvery       = flag.Int("log-every", 0, "Episodes between score summaries")
	printScores    = flag.Bool("print-scores", false, "Print the score of every episode")
	historyPath    = flag.String("history", "", "Output score history file (JSON)")
	verbose        = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	layers, _ := utils.ParseHiddenLayers(cfg.HiddenLayers)

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    snakenet Trainer                          ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Board:         %dx%d\n", cfg.GridWidth, cfg.GridHeight)
	fmt.Printf("  Max ticks:     %d\n", cfg.MaxTicks)
	fmt.Printf("  Hidden layers: %s\n", cfg.HiddenLayers)
	fmt.Printf("  Episodes:      %d\n", cfg.Episodes)
	fmt.Printf("  Learning Rate: %g\n", cfg.LearningRate)
	fmt.Printf("  Discount:      %g\n", cfg.DiscountFactor)
	fmt.Printf("  Seed:          %d\n", cfg.Seed)
	fmt.Println()

	stats := &utils.TimingStats{}
	start := time.Now()
	net, err := buildNetwork(cfg, layers)
	utils.Since(&stats.ModelInitTime, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building network: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Network: %d layers\n", net.NumLayers())
	for i := 0; i < net.NumLayers(); i++ {
		w, _ := net.Layer(i)
		r, c := w.Dims()
		fmt.Printf("  layer %d: %d -> %d\n", i, r, c)
	}

	// apple placement gets its own stream so weight init does not shift it
	appleRand := rand.New(rand.NewSource(cfg.Seed + 1))
	newGame := func() agent.Environment {
		g, err := snake.New(cfg.GridWidth, cfg.GridHeight, snake.WithRand(appleRand), snake.WithMaxTicks(cfg.MaxTicks))
		if err != nil {
			// the board size was validated with the config
			panic(err)
		}
		return g
	}

	history := utils.NewHistory(cfg)
	window := &utils.ScoreWindow{}
	observer := agent.ObserverFunc(func(r agent.EpisodeResult) {
		window.Record(r.Score, r.Steps)
		if cfg.HistoryPath != "" {
			history.Add(utils.EpisodeRecord{Episode: r.Episode, Score: r.Score, Steps: r.Steps})
		}
		if cfg.PrintScores {
			fmt.Println(r.Score)
		}
		if r.Episode%cfg.LogEvery == 0 {
			s := window.Snapshot()
			fmt.Printf("Episode %d/%d | Score: mean %.2f sd %.2f min %.0f max %.0f | Best: %.0f | Steps: %.1f\n",
				r.Episode, cfg.Episodes, s.Mean, s.StdDev, s.Min, s.Max, s.Best, s.AvgSteps)
		}
	})

	fmt.Println("\nStarting training...")
	runStats, err := agent.Run(net, agent.Config{
		Episodes:       cfg.Episodes,
		LearningRate:   cfg.LearningRate,
		DiscountFactor: cfg.DiscountFactor,
	}, newGame, observer)
	if runStats != nil {
		runStats.ModelInitTime = stats.ModelInitTime
		stats = runStats
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nTraining complete! Total time: %.2fs\n", stats.TotalTime.Seconds())

	if *verbose {
		utils.PrintTimingStats(stats, stats.Steps)
	}

	if cfg.HistoryPath != "" {
		fmt.Printf("\nSaving score history to %s...\n", cfg.HistoryPath)
		if err := utils.SaveHistory(cfg.HistoryPath, history); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Done!")
	}
}

func loadConfig() (*utils.Config, error) {
	cfg := utils.DefaultConfig()
	if *configPath != "" {
		loaded, err := utils.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(utils.Overrides{
		GridWidth:      *gridWidth,
		GridHeight:     *gridHeight,
		MaxTicks:       *maxTicks,
		HiddenLayers:   *hiddenLayers,
		Episodes:       *episodes,
		LearningRate:   *learningRate,
		DiscountFactor: *discountFactor,
		Seed:           *seed,
		LogEvery:       *logEvery,
		PrintScores:    *printScores,
		HistoryPath:    *historyPath,
	})
	if err := utils.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildNetwork maps one board observation to the four action values and
// inserts the configured hidden layers in order.
func buildNetwork(cfg *utils.Config, layers []utils.HiddenLayer) (*m.Network, error) {
	inputSize := cfg.GridWidth * cfg.GridHeight * 3
	net, err := m.NewNetwork(inputSize, agent.NumActions, rand.NewSource(cfg.Seed))
	if err != nil {
		return nil, err
	}
	for _, layer := range layers {
		if err := net.AddHiddenLayer(layer.Neurons, layer.After); err != nil {
			return nil, fmt.Errorf("hidden layer %d@%d: %w", layer.Neurons, layer.After, err)
		}
	}
	return net, nil
}
