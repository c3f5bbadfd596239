package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrQuit is returned by the REPL when the user quits or input ends.
var ErrQuit = errors.New("quit")

// Client renders server messages to a terminal and reads the player's choices.
type Client struct {
	conn io.ReadWriter
	in   *bufio.Reader
	out  io.Writer
}

// NewClient creates a REPL client talking to a match over conn.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// RunREPL reads server messages and handles them interactively until the
// game is over.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "event":
			c.renderEvent(msg.Event)

		case "error":
			fmt.Fprintf(c.out, "! %s\n", msg.Result)

		case "state":
			c.renderState(msg.State)

		case "choose_action":
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			idx, err := c.readChoice(len(msg.Actions))
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: "action", Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case "game_over":
			c.renderState(msg.State)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 14 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  %s  Prizes: %d  Hand: %d  Deck: %d  Discard: %d\n",
		strings.ToUpper(opp.Name), opp.PrizesLeft, opp.HandCount, opp.DeckCount, opp.DiscardCount)
	fmt.Fprintf(w, "║  Bench:  %s\n", formatBench(opp.Bench))
	fmt.Fprintf(w, "║  Active: %s\n", formatPokemon(opp.Active))

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Active: %s\n", formatPokemon(you.Active))
	if you.Active != nil {
		for _, a := range you.Active.Attacks {
			fmt.Fprintf(w, "║          %s\n", formatAttack(a))
		}
	}
	fmt.Fprintf(w, "║  Bench:  %s\n", formatBench(you.Bench))
	fmt.Fprintf(w, "║  YOU  Prizes: %d  Hand: %d  Deck: %d  Discard: %d\n",
		you.PrizesLeft, you.HandCount, you.DeckCount, you.DiscardCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	if you.TrainersLock {
		turnInfo += " | Trainers blocked"
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, card := range you.Hand {
			fmt.Fprintf(w, "[%d] %s  ", i+1, card.Name)
		}
		fmt.Fprintln(w)
	}
}

func formatPokemon(pv *PokemonView) string {
	if pv == nil {
		return "[ ]"
	}
	s := fmt.Sprintf("[%s %d/%d", pv.Name, pv.HP, pv.MaxHP)
	if len(pv.Energy) > 0 {
		s += " E:" + strings.Join(pv.Energy, ",")
	}
	if pv.Status != "" {
		s += " " + pv.Status
	}
	return s + "]"
}

func formatBench(bench []PokemonView) string {
	if len(bench) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(bench))
	for i := range bench {
		parts[i] = formatPokemon(&bench[i])
	}
	return strings.Join(parts, " ")
}

func formatAttack(a AttackView) string {
	cost := strings.Join(a.Cost, ",")
	if cost == "" {
		cost = "free"
	}
	s := fmt.Sprintf("%s (%s) %d", a.Name, cost, a.Damage)
	if a.Missing > 0 {
		s += fmt.Sprintf(" - needs %d more", a.Missing)
	}
	return s
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

// readChoice reads a 1-based choice and returns it 0-based. "q" quits.
func (c *Client) readChoice(count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" || (err != nil && line == "") {
			return 0, ErrQuit
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, nil
	}
}
