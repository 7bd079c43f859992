package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"holdem-table/internal/game"
	"holdem-table/internal/table"
)

// local-game runs a table on stdin for hot-seat play, no server and no
// database involved. Whoever holds the keyboard acts for the current seat.
func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	tbl := table.New(table.Config{
		TableID:    "local",
		SmallBlind: 10,
		BigBlind:   20,
		Pacing:     500 * time.Millisecond,
		Logger:     log.Logger,
	})
	defer tbl.Close()

	fmt.Println("commands: sit <seat> <name> <buyin> | stand <seat> | start | fold | check | call | raise <amount> | state | quit")
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return
		case "sit":
			if len(fields) != 4 {
				fmt.Println("usage: sit <seat> <name> <buyin>")
				continue
			}
			seat, _ := strconv.Atoi(fields[1])
			buyIn, _ := strconv.ParseInt(fields[3], 10, 64)
			name := fields[2]
			if err := tbl.Sit(seat, "player_"+name, name, buyIn); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printState(tbl)
		case "stand":
			if len(fields) != 2 {
				fmt.Println("usage: stand <seat>")
				continue
			}
			seat, _ := strconv.Atoi(fields[1])
			if err := tbl.Stand(seat, ""); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printState(tbl)
		case "start":
			if err := tbl.StartHand(ctx); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printState(tbl)
		case "fold", "check", "call", "raise":
			var amount int64
			if fields[0] == "raise" {
				if len(fields) != 2 {
					fmt.Println("usage: raise <amount>")
					continue
				}
				amount, _ = strconv.ParseInt(fields[1], 10, 64)
			}
			seat := tbl.Snapshot("").CurrentActorSeat
			if seat < 0 {
				fmt.Println("error: nobody to act")
				continue
			}
			if err := tbl.Act(ctx, seat, "", game.ActionType(fields[0]), amount); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printState(tbl)
		case "state":
			printState(tbl)
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func printState(tbl *table.Table) {
	snap := tbl.RevealSnapshot()
	fmt.Printf("phase=%s pot=%d board=[%s]\n", snap.Phase, snap.Pot, strings.Join(snap.CommunityCards, " "))
	for _, seat := range snap.Seats {
		if seat.Status == "empty" {
			continue
		}
		marker := " "
		if seat.Seat == snap.CurrentActorSeat {
			marker = "*"
		}
		badge := ""
		if seat.Dealer {
			badge = " (D)"
		}
		cards := ""
		if len(seat.HoleCards) > 0 {
			cards = " [" + strings.Join(seat.HoleCards, " ") + "]"
		}
		fmt.Printf("%s seat %d %s%s stack=%d bet=%d status=%s%s\n",
			marker, seat.Seat, seat.Name, badge, seat.Stack, seat.RoundBet, seat.Status, cards)
	}
	for _, w := range snap.Winners {
		fmt.Printf("  %s wins %d (%s)\n", w.Name, w.Amount, w.Category)
	}
	if len(snap.Events) > 0 {
		fmt.Println("  last:", snap.Events[len(snap.Events)-1])
	}
}
