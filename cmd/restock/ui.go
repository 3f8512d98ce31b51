package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"restock/internal/game"
	"restock/internal/leaderboard"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %.2f", min))
			continue
		}
		return v, nil
	}
}

func promptInt(label string, min int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func printIntro(s game.Snapshot) {
	accent.Printf("\n== LEVEL %d: %s ==\n", s.Level, strings.ToUpper(s.LevelLabel))
	fmt.Printf("Difficulty: %s\n", s.Difficulty)
	fmt.Printf("Goal:       %s\n", money(s.GoalCash))
	fmt.Printf("Cash:       %s\n", money(s.Cash))
	fmt.Printf("Inventory:  %d units\n", s.Inventory)
	fmt.Printf("Turns:      %d\n", s.MaxTurns)
	fmt.Println()
}

func renderHUD(h game.HUDView) {
	accent.Printf("\n-- Turn %d/%d | %s --\n", h.Turn, h.MaxTurns, h.LevelLabel)
	fmt.Printf("Cash: %s  Goal: %s  Inventory: %d/%d  Incoming: %d\n",
		colorMoney(h.Cash), money(h.GoalCash), h.Inventory, h.WarehouseCapacity, h.IncomingUnits)
	extras := []string{fmt.Sprintf("unit cost %s", money(h.UnitCost))}
	if h.MarketingTurnsLeft > 0 {
		extras = append(extras, fmt.Sprintf("marketing %d turns", h.MarketingTurnsLeft))
	}
	if h.InsuranceBlocks > 0 {
		extras = append(extras, fmt.Sprintf("insurance x%d", h.InsuranceBlocks))
	}
	if h.ForecastUnlocked {
		extras = append(extras, "forecast ready")
	}
	printInfo(strings.Join(extras, " | "))
}

func renderTurnReport(rep game.TurnReport) {
	accent.Printf("\n== TURN %d RESULT ==\n", rep.Turn)
	if rep.Event != nil {
		switch {
		case rep.Event.Blocked:
			printSuccess("Insurance absorbed: " + rep.Event.Message)
		case rep.Event.Kind == game.EventGood:
			printSuccess("Event: " + rep.Event.Message)
		default:
			printWarn("Event: " + rep.Event.Message)
		}
		if rep.Event.InventoryLost > 0 {
			fmt.Printf("Inventory lost: %d units\n", rep.Event.InventoryLost)
		}
	}

	if rep.Arrival.Cancelled && rep.Arrival.Units > 0 {
		printWarn(fmt.Sprintf("Shipment of %d units was cancelled in transit.", rep.Arrival.Units))
	} else if rep.Arrival.Units > 0 {
		fmt.Printf("Arrived: %d units\n", rep.Arrival.Units)
	}
	if rep.Delayed {
		printWarn("Shipments are delayed one extra turn.")
	}

	if rep.Order != nil {
		if rep.Order.Rejected {
			printWarn(fmt.Sprintf("Order rejected: %s needed, not enough cash. The turn is forfeit.", money(rep.Order.TotalCost)))
			return
		}
		line := fmt.Sprintf("Ordered: %d units @ %s + %s fee = %s (arrives in %d turn(s))",
			rep.Order.Qty, money(rep.Order.UnitCost), money(rep.Order.Fee), money(rep.Order.TotalCost), rep.Order.LeadTurns)
		if rep.Order.DiscountLabel != "" {
			line += " [" + rep.Order.DiscountLabel + "]"
		}
		fmt.Println(line)
	}

	if rep.Sale != nil {
		fmt.Printf("Demand: %d  Sold: %d @ %s  Revenue: %s\n",
			rep.Sale.Demand, rep.Sale.UnitsSold, money(rep.Sale.Price), money(rep.Sale.Revenue))
		if rep.Sale.UnmetDemand > 0 {
			printWarn(fmt.Sprintf("Missed %d sales.", rep.Sale.UnmetDemand))
		}
	}
	if rep.Storage != nil {
		printWarn(fmt.Sprintf("External storage: %d units over capacity, %s charged.", rep.Storage.ExcessUnits, money(rep.Storage.Penalty)))
	}
	if rep.Stockout != nil {
		printWarn(fmt.Sprintf("Stockout! %s penalty for %d missed orders.", money(rep.Stockout.Penalty), rep.Stockout.UnmetDemand))
	}

	fmt.Printf("Cash: %s  Inventory: %d\n", colorMoney(rep.Cash), rep.Inventory)
	switch rep.Status {
	case game.StatusWon:
		printSuccess("GOAL REACHED!")
	case game.StatusBankrupt:
		danger.Println("BANKRUPT. No cash, no stock, no way back.")
	case game.StatusTimedOut:
		printWarn("Out of turns.")
	}
}

func printQuote(standard, rush game.OrderQuote) {
	line := fmt.Sprintf("Quote: %d units @ %s", standard.Qty, money(standard.UnitCost))
	if standard.DiscountLabel != "" {
		line += " [" + standard.DiscountLabel + "]"
	}
	line += fmt.Sprintf(" = %s standard, %s expedited", money(standard.TotalCost), money(rush.TotalCost))
	printInfo(line)
}

func renderShop(offers []game.UpgradeOffer, cash float64) {
	accent.Println("\n== UPGRADE SHOP ==")
	fmt.Printf("Cash: %s\n", colorMoney(cash))
	fmt.Printf("%-18s %-7s %10s %-10s\n", "UPGRADE", "TIER", "COST", "STATUS")
	for _, o := range offers {
		cost := "-"
		status := "available"
		switch {
		case o.Locked:
			status = "locked"
		case o.NextCost == 0 && !o.Repeatable:
			status = "maxed"
		case !o.Affordable:
			status = "too pricey"
		}
		if o.NextCost > 0 {
			cost = money(o.NextCost)
		}
		tier := fmt.Sprintf("%d/%d", o.Tier, o.MaxTier)
		fmt.Printf("%-18s %-7s %10s %-10s\n", o.ID, tier, cost, status)
	}
	fmt.Println()
}

func renderHistory(h game.History) {
	accent.Println("\n== RUN HISTORY ==")
	if len(h.Turns) == 0 {
		printInfo("No turns resolved yet.")
		return
	}
	fmt.Printf("%-5s %10s %8s %8s %12s\n", "TURN", "PRICE", "DEMAND", "STOCK", "CASH")
	for i := range h.Turns {
		fmt.Printf("%-5s %10s %8d %8d %12s\n",
			h.Turns[i], money(h.Price[i]), h.Demand[i], h.Inventory[i], money(h.Cash[i]))
	}
	fmt.Println()
}

func renderSummary(s game.RunSummary) {
	accent.Println("\n== RUN SUMMARY ==")
	fmt.Printf("Outcome:    %s\n", s.Status)
	fmt.Printf("Level:      %d\n", s.Level)
	fmt.Printf("Final cash: %s\n", colorMoney(s.FinalCash))
	fmt.Printf("Profit:     %s\n", colorMoney(s.Profit))
	fmt.Printf("Avg price:  %s\n", money(s.AvgPrice))
	fmt.Printf("Stockouts:  %d\n", s.Stockouts)
	if s.BestTurn != "" {
		fmt.Printf("Best turn:  %s (%s)\n", s.BestTurn, money(s.BestCash))
		fmt.Printf("Worst turn: %s (%s)\n", s.WorstTurn, money(s.WorstCash))
	}
	fmt.Println()
}

func renderLeaderboard(rows []leaderboard.Entry) {
	accent.Println("\n== LEADERBOARD ==")
	if len(rows) == 0 {
		printInfo("No scores yet. Finish a run to get on the board.")
		return
	}
	fmt.Printf("%-6s %-18s %10s %7s %-8s %-12s\n", "RANK", "PLAYER", "SCORE", "LEVEL", "DIFF", "DATE")
	for i, row := range rows {
		fmt.Printf("%-6d %-18s %10d %7d %-8s %-12s\n",
			i+1,
			truncate(row.Name, 18),
			row.Score,
			row.Level,
			row.Difficulty,
			row.RecordedAt.Local().Format("2006-01-02"),
		)
	}
	fmt.Println()
}

func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%.2f", sign, v)
}

func colorMoney(v float64) string {
	text := money(v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 {
		return s
	}
	// Cut on runes so multi-byte names never split mid-character.
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
