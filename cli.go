// cli.go
//
// Commands:
//   clue serve   HTTP API (default when no command is given)
//   clue play    play in the terminal
//   clue sim     self-play games and check engine invariants

package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/clue/internal/config"
	"github.com/robalobadob/clue/internal/console"
	"github.com/robalobadob/clue/internal/game"
	"github.com/robalobadob/clue/internal/history"
	"github.com/robalobadob/clue/internal/httpserver"
	"github.com/robalobadob/clue/internal/sim"
	"github.com/robalobadob/clue/internal/store"
)

func rootCmd() *cobra.Command {
	var cfgFile string
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "clue",
		Short:         "Clue deduction game server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}
	root.RunE = serveCmd.RunE

	var opponents int
	var difficulty string
	var seed int64
	play := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			if !cmd.Flags().Changed("opponents") {
				opponents = cfg.DefaultOpponents
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			g, err := game.New(game.Options{Opponents: opponents, Difficulty: game.Difficulty(difficulty)}, rng)
			if err != nil {
				return err
			}
			log.Debug().Int64("seed", seed).Msg("new game")
			return console.New(g, rng, os.Stdout).Run()
		},
	}
	play.Flags().IntVarP(&opponents, "opponents", "n", 2, "number of computer opponents (1-5)")
	play.Flags().StringVarP(&difficulty, "difficulty", "d", string(game.DifficultyMedium), "Easy, Medium or Hard")
	play.Flags().Int64Var(&seed, "seed", 0, "deal seed (default: random)")

	var simSeed int64
	var games, steps int
	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "Self-play games and check engine invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := sim.Run(simSeed, games, steps)
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Seed", "Games", "Human wins", "Opponent wins", "Unfinished", "Steps"})
			t.AppendRow(table.Row{simSeed, rep.Games, rep.HumanWins, rep.OpponentWins, rep.Unfinished, rep.Steps})
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		},
	}
	simCmd.Flags().Int64Var(&simSeed, "seed", 1, "first seed")
	simCmd.Flags().IntVar(&games, "games", 100, "games to play")
	simCmd.Flags().IntVar(&steps, "steps", 2000, "step limit per game")

	root.AddCommand(serveCmd, play, simCmd)
	return root
}

func serve(cfg *config.Config) error {
	db, err := history.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer db.Close()

	srv := httpserver.New(cfg, store.NewMemoryStore(), db)
	log.Info().Str("port", cfg.Port).Str("db", cfg.DatabaseURL).Msg("starting clue server")
	return srv.Start(":" + cfg.Port)
}
