package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Dashboard(ctx context.Context) error

	ListGoals(ctx context.Context, category string) error
	ShowGoal(ctx context.Context, id models.ID) error
	AddGoal(ctx context.Context) error
	EditGoal(ctx context.Context, id models.ID) error
	Progress(ctx context.Context, id models.ID, value float64, note string) error
	DeleteGoal(ctx context.Context, id models.ID) error
	Deadlines(ctx context.Context) error
	Stats(ctx context.Context) error

	ListJournal(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	ShowEntry(ctx context.Context, id models.ID) error
	NewEntry(ctx context.Context) error
	EditEntry(ctx context.Context, id models.ID) error
	DeleteEntry(ctx context.Context, id models.ID) error

	ListNotes(ctx context.Context) error
	AddNote(ctx context.Context, text string) error
	EditNote(ctx context.Context, id models.ID) error
	DeleteNote(ctx context.Context, id models.ID) error

	Budget(ctx context.Context, income float64) error
	Finance(ctx context.Context, args []string) error
	Snapshots(ctx context.Context) error
	Purge(ctx context.Context, key string) error
}

const helpText = `Available commands:
  dashboard                      refresh everything and show a summary
  goals [category]               list goals, optionally by category
  goal <id>                      show one goal
  addgoal | editgoal <id>        create or edit a goal
  progress <id> <value> [note]   record progress
  delgoal <id>                   delete a goal
  deadlines | stats              upcoming deadlines, goal statistics
  journal                        list entries matching the filter
  filter [clear|query|tag|mood|from|to] ...
  entry <id>                     show one entry
  newentry | editentry <id>      compose an entry
  delentry <id>                  delete an entry
  notes                          list notes
  addnote [text]                 add a note (prompts when text is omitted)
  editnote <id> | delnote <id>   edit or delete a note
  budget <income>                50/30/20 split
  finance [income|expense|goal] ...
  snapshots                      list the local snapshot cache
  purge [goals|journal|notes]    clear the cache, or one snapshot
  exit | quit`

// runREPL starts a simple read–eval–print loop for the lifedash CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Missing arguments print a usage line without
// calling 'a'. Errors returned by handlers are printed as one-line transient
// messages and the loop keeps running. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// The prompt shows the current status from statusFn.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("lifedash%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "dashboard":
			report(a.Dashboard(ctx))

		case "goals":
			report(a.ListGoals(ctx, strings.Join(args, " ")))

		case "goal":
			if id, ok := needID(args, "goal <id>"); ok {
				report(a.ShowGoal(ctx, id))
			}

		case "addgoal":
			report(a.AddGoal(ctx))

		case "editgoal":
			if id, ok := needID(args, "editgoal <id>"); ok {
				report(a.EditGoal(ctx, id))
			}

		case "progress":
			if len(args) < 2 {
				printlnFn("Usage: progress <id> <value> [note]")
				continue
			}
			v, err := parseNumber(args[1])
			if err != nil {
				printlnFn("Progress value must be a number")
				continue
			}
			report(a.Progress(ctx, models.ID(args[0]), v, strings.Join(args[2:], " ")))

		case "delgoal":
			if id, ok := needID(args, "delgoal <id>"); ok {
				report(a.DeleteGoal(ctx, id))
			}

		case "deadlines":
			report(a.Deadlines(ctx))

		case "stats":
			report(a.Stats(ctx))

		case "journal":
			report(a.ListJournal(ctx))

		case "filter":
			report(a.Filter(ctx, args))

		case "entry":
			if id, ok := needID(args, "entry <id>"); ok {
				report(a.ShowEntry(ctx, id))
			}

		case "newentry":
			report(a.NewEntry(ctx))

		case "editentry":
			if id, ok := needID(args, "editentry <id>"); ok {
				report(a.EditEntry(ctx, id))
			}

		case "delentry":
			if id, ok := needID(args, "delentry <id>"); ok {
				report(a.DeleteEntry(ctx, id))
			}

		case "notes":
			report(a.ListNotes(ctx))

		case "addnote":
			report(a.AddNote(ctx, strings.Join(args, " ")))

		case "editnote":
			if id, ok := needID(args, "editnote <id>"); ok {
				report(a.EditNote(ctx, id))
			}

		case "delnote":
			if id, ok := needID(args, "delnote <id>"); ok {
				report(a.DeleteNote(ctx, id))
			}

		case "budget":
			if len(args) == 0 {
				printlnFn("Usage: budget <income>")
				continue
			}
			v, err := parseNumber(args[0])
			if err != nil || v < 0 {
				printlnFn("Income must be a non-negative number")
				continue
			}
			report(a.Budget(ctx, v))

		case "finance":
			report(a.Finance(ctx, args))

		case "snapshots":
			report(a.Snapshots(ctx))

		case "purge":
			report(a.Purge(ctx, strings.Join(args, " ")))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func needID(args []string, usage string) (models.ID, bool) {
	if len(args) == 0 {
		printlnFn("Usage: " + usage)
		return "", false
	}
	return models.ID(args[0]), true
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}

// parseNumber accepts finite numbers only.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
