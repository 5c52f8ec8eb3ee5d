package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	touch()

	Create(ctx context.Context, args []string) error
	Unlock(ctx context.Context, args []string) error
	Lock(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error

	ListGroups(ctx context.Context, args []string) error
	AddGroup(ctx context.Context, args []string) error
	EditGroup(ctx context.Context, args []string) error
	DeleteGroup(ctx context.Context, args []string) error

	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error

	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	ActivityLog(ctx context.Context, args []string) error
}

const (
	lockedHelp = `Available commands:
  create            create a new vault
  unlock            unlock the vault
  status            show vault status
  gen [len]         generate a password
  log [n]           show recent activity
  help              show this help
  exit | quit       leave the program`

	unlockedHelp = `Available commands:
  status                        show vault status
  save                          write changes to disk
  lock                          lock the vault
  groups                        list groups
  addgroup                      add a group
  editgroup <id>                rename or move a group
  delgroup <id>                 delete a group (items keep living ungrouped)
  (l)ist [group-id]             list items
  show <id> [-p]                show an item (-p reveals the password)
  add                           add an item
  edit <id>                     edit an item
  delete <id>                   delete an item
  history <id> [-p]             show previous passwords of an item
  search <words...>             search items
  copy <id> [user|pass|url]     copy a field to the clipboard
  gen [len]                     generate a password
  export                        write a copy under another password
  import                        merge another vault file
  log [n]                       show recent activity
  help                          show this help
  exit | quit                   save and leave the program`
)

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Handler errors are printed and the loop keeps going; a failed command
// never ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vaultura (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		a.touch()

		cmd, args := parts[0], parts[1:]
		var cmdErr error

		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn(unlockedHelp)
			} else {
				printlnFn(lockedHelp)
			}

		case "create":
			cmdErr = a.Create(ctx, args)
		case "unlock":
			cmdErr = a.Unlock(ctx, args)
		case "lock":
			cmdErr = a.Lock(ctx, args)
		case "save":
			cmdErr = a.Save(ctx, args)
		case "status":
			cmdErr = a.Status(ctx, args)

		case "groups":
			cmdErr = a.ListGroups(ctx, args)
		case "addgroup":
			cmdErr = a.AddGroup(ctx, args)
		case "editgroup":
			cmdErr = a.EditGroup(ctx, args)
		case "delgroup":
			cmdErr = a.DeleteGroup(ctx, args)

		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "history":
			cmdErr = a.History(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "copy":
			cmdErr = a.Copy(ctx, args)
		case "gen":
			cmdErr = a.Generate(ctx, args)

		case "export":
			cmdErr = a.Export(ctx, args)
		case "import":
			cmdErr = a.Import(ctx, args)
		case "log":
			cmdErr = a.ActivityLog(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
