package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli/v2"

	"github.com/decker502/memory/pkg/app"
	"github.com/decker502/memory/pkg/config"
	"github.com/decker502/memory/pkg/embedded"
	"github.com/decker502/memory/pkg/game"
)

func main() {
	embedded.Init(dataFS)

	cliApp := &cli.App{
		Name:  "memory",
		Usage: "pair-matching card game",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable verbose logging"},
			&cli.StringFlag{Name: "config", Usage: "path to a config YAML (defaults to the built-in config)"},
		}, playFlags()...),
		Action: runPlay,
		Commands: []*cli.Command{
			newPlayCommand(),
			newSimulateCommand(),
			newCheckAssetsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		// 日志可能已被静音，错误直接写到 stderr
		fmt.Fprintf(os.Stderr, "memory: %v\n", err)
		os.Exit(1)
	}
}

func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "cards", Usage: "card image directory (overrides assets.card_dir)"},
		&cli.Uint64Flag{Name: "seed", Usage: "shuffle seed, 0 = time based"},
		&cli.BoolFlag{Name: "procedural", Usage: "draw card faces instead of loading images"},
		&cli.BoolFlag{Name: "fullscreen", Usage: "start in fullscreen"},
	}
}

func newPlayCommand() *cli.Command {
	return &cli.Command{
		Name:   "play",
		Usage:  "open the game window (default)",
		Flags:  playFlags(),
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	cardDir := cfg.Assets.CardDir
	if c.IsSet("cards") {
		cardDir = c.String("cards")
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    c.Bool("verbose"),
		Game:       cfg,
		CardSource: app.ResolveCardSource(cardDir, embedded.CardSource()),
		Procedural: c.Bool("procedural"),
		Seed:       c.Uint64("seed"),
		Fullscreen: c.Bool("fullscreen"),
	})
	if err != nil {
		return err
	}

	gameApp.ApplyWindowSettings()
	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func newSimulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "play rounds headlessly with a perfect-memory player",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rounds", Value: 10, Usage: "number of rounds"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "shuffle seed"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if !c.Bool("verbose") {
				log.SetOutput(io.Discard)
			}

			stats, err := app.Simulate(cfg, c.Int("rounds"), c.Uint64("seed"))
			if err != nil {
				return err
			}

			total := 0
			for _, s := range stats {
				fmt.Printf("round %d: %d turns (%s)\n", s.Round, s.Turns, s.Duration)
				total += s.Turns
			}
			fmt.Printf("average: %.2f turns over %d rounds\n", float64(total)/float64(len(stats)), len(stats))
			return nil
		},
	}
}

func newCheckAssetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "check-assets",
		Usage: "report which card images are present",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cards", Usage: "card image directory (overrides assets.card_dir)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			cardDir := cfg.Assets.CardDir
			if c.IsSet("cards") {
				cardDir = c.String("cards")
			}

			source := app.ResolveCardSource(cardDir, embedded.CardSource())
			report := game.ScanCardAssets(source, cfg.Assets.Back, cfg.Identifiers())

			fmt.Printf("back image: %v\n", report.HasBack)
			fmt.Printf("faces: %d available, %d missing\n", len(report.Available), len(report.Missing))
			for _, id := range report.Missing {
				fmt.Printf("  missing %s%s\n", id, game.CardImageExt)
			}

			need := cfg.PairCount()
			switch {
			case !report.HasBack:
				return cli.Exit(fmt.Sprintf("card back %s%s not found", cfg.Assets.Back, game.CardImageExt), 1)
			case len(report.Available) < need:
				return cli.Exit(fmt.Sprintf("%v: %dx%d grid needs %d, have %d",
					game.ErrNotEnoughIdentifiers, cfg.Grid.Rows, cfg.Grid.Cols, need, len(report.Available)), 1)
			}
			fmt.Printf("ok: %d pairs needed\n", need)
			return nil
		},
	}
}

// loadConfig 读取 --config 指定的文件，否则使用内置配置
func loadConfig(c *cli.Context) (*config.GameConfig, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	data, err := embedded.ReadFile(embedded.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in config: %w", err)
	}
	return config.Parse(data)
}
