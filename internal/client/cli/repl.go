package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Submit(ctx context.Context, args []string) error
	Summary(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Stats(ctx context.Context) error
	Leaderboard(ctx context.Context, args []string) error
	Challenge(ctx context.Context) error
	Complete(ctx context.Context) error
	NewChallenge(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: submit <pose> <seconds> <accuracy>, summary, dashboard, stats, " +
		"leaderboard [n], challenge, complete, newchallenge <pose> <seconds> <xp>, logout, exit"
)

// runREPL reads commands line by line and dispatches them until EOF, "exit"
// or "quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "yoga %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "submit":
			cmdErr = a.Submit(ctx, args)
		case "summary":
			cmdErr = a.Summary(ctx)
		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "stats":
			cmdErr = a.Stats(ctx)
		case "leaderboard", "top":
			cmdErr = a.Leaderboard(ctx, args)
		case "challenge":
			cmdErr = a.Challenge(ctx)
		case "complete":
			cmdErr = a.Complete(ctx)
		case "newchallenge":
			cmdErr = a.NewChallenge(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}
