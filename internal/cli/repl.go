package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. Tests replace it
// with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	onActivity()

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Stay(ctx context.Context) error
	Profile(ctx context.Context) error

	Items(ctx context.Context) error
	Claim(ctx context.Context) error
	Retry(ctx context.Context) error
	MyClaims(ctx context.Context) error
	EditClaim(ctx context.Context) error
	Unclaim(ctx context.Context) error

	RSVP(ctx context.Context) error
	AddGuest(ctx context.Context) error
	DeleteGuest(ctx context.Context) error

	Event(ctx context.Context) error
	Bank(ctx context.Context) error

	AddItem(ctx context.Context) error
	DeleteItem(ctx context.Context) error
	Seed(ctx context.Context) error
	ExportClaims(ctx context.Context) error
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, event, exit")
		return
	}
	printlnFn("Available commands: items, claim, retry, myclaims, editclaim, unclaim,")
	printlnFn("    rsvp, addguest, delguest, profile, event, bank, stay, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin commands: additem, delitem, seed, exportclaims")
	}
}

// runREPL reads command lines from reader and dispatches them. The same
// reader serves the prompt helpers, so a command and the field input it
// asks for stay in order. Every non-empty line counts as user activity
// for the idle-timeout machine. The loop exits on EOF or "exit"/"quit".
// Command handlers report their own errors; the loop stays up regardless.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("registry %s> ", statusFn()))
		line, rerr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if rerr != nil {
				return
			}
			continue
		}
		cmd := strings.ToLower(parts[0])
		a.onActivity()

		var err error
		switch cmd {
		case "help":
			printHelp(a)
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "stay":
			err = a.Stay(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "items", "list":
			err = a.Items(ctx)
		case "claim":
			err = a.Claim(ctx)
		case "retry":
			err = a.Retry(ctx)
		case "myclaims":
			err = a.MyClaims(ctx)
		case "editclaim":
			err = a.EditClaim(ctx)
		case "unclaim":
			err = a.Unclaim(ctx)
		case "rsvp":
			err = a.RSVP(ctx)
		case "addguest":
			err = a.AddGuest(ctx)
		case "delguest":
			err = a.DeleteGuest(ctx)
		case "event":
			err = a.Event(ctx)
		case "bank":
			err = a.Bank(ctx)
		case "additem":
			err = a.AddItem(ctx)
		case "delitem":
			err = a.DeleteItem(ctx)
		case "seed":
			err = a.Seed(ctx)
		case "exportclaims":
			err = a.ExportClaims(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn("Command failed:", err.Error())
		}
		if rerr != nil {
			return
		}
	}
}
