package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"tripcast/internal/app"
)

type lookupCmd struct{}

// Run drives a lookup session from the terminal. Each plain line of input
// updates the location text; the session debounces and fetches suggestions
// in the background, exactly as the web UI does.
func (c *lookupCmd) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sess := app.NewSession(buildApp(), cli.Debounce)
	defer sess.Close()

	fmt.Println("Type a place name. Commands: /pick N, /go, /quit")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "/quit":
			return nil

		case line == "/go":
			sess.Search(ctx)
			printReport(sess.Snapshot())

		case strings.HasPrefix(line, "/pick "):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/pick ")))
			st := sess.Snapshot()
			if err != nil || n < 1 || n > len(st.Suggestions) {
				fmt.Println("No such suggestion.")
				continue
			}
			sess.Select(st.Suggestions[n-1])
			fmt.Printf("Selected: %s\n", sess.Snapshot().Location)

		default:
			sess.SetInput(ctx, line)
			printSuggestions(sess, cli.Debounce)
		}
	}
}

// printSuggestions waits out the debounce window plus a grace period for the
// fetch, then lists whatever arrived.
func printSuggestions(sess *app.Session, debounce time.Duration) {
	deadline := time.Now().Add(debounce + 3*time.Second)
	for time.Now().Before(deadline) {
		if len(sess.Snapshot().Suggestions) > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	st := sess.Snapshot()
	if len(st.Suggestions) == 0 {
		fmt.Println("No suggestions.")
		return
	}
	shown := st.Suggestions
	if len(shown) > app.DisplaySuggestions {
		shown = shown[:app.DisplaySuggestions]
	}
	for i, s := range shown {
		fmt.Printf("  %d. %s\n", i+1, s)
	}
}

func printReport(st app.State) {
	if st.Notice != "" {
		fmt.Println(st.Notice)
		return
	}
	for _, line := range []string{st.Rain, st.Temperature, st.Humidity, st.Advisory} {
		if line != "" {
			fmt.Println(line)
		}
	}
}
