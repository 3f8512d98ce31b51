package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"restock/internal/config"
	"restock/internal/game"
	"restock/internal/leaderboard"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()

	root := &cobra.Command{
		Use:          "restock",
		Short:        "Restock supply chain game",
		SilenceUsage: true,
	}

	root.AddCommand(
		newPlayCmd(cfg),
		newTopCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadBalance(cfg config.CLIConfig) (game.Balance, error) {
	if cfg.BalancePath == "" {
		return game.DefaultBalance(), nil
	}
	return game.LoadBalance(cfg.BalancePath)
}

func newPlayCmd(cfg config.CLIConfig) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			bal, err := loadBalance(cfg)
			if err != nil {
				return err
			}

			if difficulty == "" {
				options := make([]string, 0, 3)
				for _, d := range game.Difficulties() {
					options = append(options, string(d))
				}
				choice, err := promptChoice("Difficulty", options, "medium")
				if err != nil {
					return err
				}
				difficulty = choice
			}
			d, err := game.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}

			engine, err := game.NewEngine(d, bal, nil, nil)
			if err != nil {
				return err
			}
			printIntro(engine.Snapshot())

			if err := runGameLoop(engine); err != nil {
				return err
			}
			return offerScoreSubmit(cmd.Context(), cfg, engine)
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "easy, medium, or hard")
	return cmd
}

func newTopCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Show the local leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := leaderboard.OpenSQLite(cfg.LeaderboardPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			rows, err := store.Top(ctx, cfg.TopLimit)
			if err != nil {
				return err
			}
			renderLeaderboard(rows)
			return nil
		},
	}
}

func runGameLoop(engine *game.Engine) error {
	for {
		for engine.Active() {
			renderHUD(engine.HUD())
			action, err := promptChoice("Action", []string{"turn", "shop", "forecast", "history", "quit"}, "turn")
			if err != nil {
				return err
			}
			switch action {
			case "turn":
				if err := playTurn(engine); err != nil {
					return err
				}
			case "shop":
				if err := runShop(engine); err != nil {
					return err
				}
			case "forecast":
				if err := showForecast(engine); err != nil {
					return err
				}
			case "history":
				renderHistory(engine.History())
			case "quit":
				printWarn("Run abandoned.")
				return nil
			}
		}

		renderSummary(engine.Summary())
		if engine.Status() != game.StatusWon {
			return nil
		}

		next, err := promptChoice("Goal reached! Continue to the next level?", []string{"yes", "no"}, "yes")
		if err != nil {
			return err
		}
		if next == "no" {
			return nil
		}
		if err := engine.AdvanceLevel(); err != nil {
			return err
		}
		printIntro(engine.Snapshot())
	}
}

func playTurn(engine *game.Engine) error {
	price, err := promptFloat("Price per unit", game.MinPrice)
	if err != nil {
		return err
	}
	qty, err := promptInt("Units to order (0 for none)", 0)
	if err != nil {
		return err
	}
	expedited := false
	if qty > 0 {
		quote := engine.QuoteOrder(qty, false)
		rush := engine.QuoteOrder(qty, true)
		printQuote(quote, rush)
		choice, err := promptChoice("Expedite for next-turn delivery?", []string{"yes", "no"}, "no")
		if err != nil {
			return err
		}
		expedited = choice == "yes"
	}

	rep, err := engine.ResolveTurn(game.TurnInput{Price: price, OrderQty: qty, Expedited: expedited})
	if err != nil {
		return err
	}
	renderTurnReport(rep)
	return nil
}

func runShop(engine *game.Engine) error {
	for {
		renderShop(engine.ListUpgrades(), engine.HUD().Cash)
		choice, err := promptOptional("Upgrade to buy (blank to leave)")
		if err != nil {
			return err
		}
		if choice == "" {
			return nil
		}
		if !engine.BuyUpgrade(game.UpgradeID(choice)) {
			printWarn("Not available: locked, maxed out, or not enough cash.")
			continue
		}
		printSuccess("Purchased " + choice + ".")
	}
}

func showForecast(engine *game.Engine) error {
	price, err := promptFloat("Price to forecast", game.MinPrice)
	if err != nil {
		return err
	}
	expected, ok := engine.ForecastDemand(price)
	if !ok {
		printWarn("Forecasting requires the forecast upgrade.")
		return nil
	}
	printInfo(fmt.Sprintf("Expected demand at $%.2f: about %d units (before events).", price, expected))
	return nil
}

func offerScoreSubmit(ctx context.Context, cfg config.CLIConfig, engine *game.Engine) error {
	if engine.FinalScore() <= 0 {
		return nil
	}
	save, err := promptChoice("Save your score?", []string{"yes", "no"}, "yes")
	if err != nil {
		return err
	}
	if save == "no" {
		return nil
	}
	name, err := promptRequired("Name")
	if err != nil {
		return err
	}

	store, err := leaderboard.OpenSQLite(cfg.LeaderboardPath)
	if err != nil {
		return err
	}
	defer store.Close()

	subCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	snap := engine.Snapshot()
	if err := store.Submit(subCtx, leaderboard.Entry{
		Name:       name,
		Score:      engine.FinalScore(),
		Level:      engine.Level(),
		Difficulty: string(snap.Difficulty),
	}); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Score saved: %d (level %d).", engine.FinalScore(), engine.Level()))
	return nil
}
