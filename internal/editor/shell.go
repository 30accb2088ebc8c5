package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/skillbanto/internal/content"
)

const shellHelp = `commands:
  list                     show blocks in order
  add <type>               append a text, heading, image or video block
  update <id> <text...>    replace a block's content
  delete <id>              remove a block
  up <id> | down <id>      move a block one position
  edit <id>                start editing a block
  draft <id> <text...>     change the pending draft
  confirm <id>             write the draft to the block
  cancel <id>              discard the draft
  save                     save as draft (published=false)
  publish                  save and publish (published=true)
  reload                   fetch the page again, dropping local edits
  clear                    dismiss the load error
  help                     show this text
  quit                     leave the editor`

// Shell is a line-oriented front end for a Session.
type Shell struct {
	session *Session
	out     io.Writer
}

// NewShell returns a shell that drives session and prints to out.
func NewShell(session *Session, out io.Writer) *Shell {
	return &Shell{session: session, out: out}
}

// Run reads commands from in until quit or EOF.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	sh.banner()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := sh.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

func (sh *Shell) banner() {
	if err := sh.session.LoadError(); err != nil {
		sh.printf("error: %v\n", err)
		sh.printf("type 'clear' to dismiss or 'reload' to fetch again\n")
		return
	}
	if page, ok := sh.session.Page(); ok {
		state := "draft"
		if page.Published {
			state = "published"
		}
		sh.printf("editing %q (%s, %d blocks)\n", page.Slug, state, sh.session.Len())
	}
}

// Exec runs a single command line and reports whether the shell should stop.
func (sh *Shell) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		sh.printf("%s\n", shellHelp)
	case "list", "ls":
		sh.list()
	case "add":
		if !sh.requireArgs(args, 1, "add <type>") {
			break
		}
		t, err := content.ParseBlockType(args[0])
		if err != nil {
			sh.printf("error: %v\n", err)
			break
		}
		block, err := sh.session.Add(t)
		if err != nil {
			sh.printf("error: %v\n", err)
			break
		}
		sh.printf("added %s block %s\n", block.Type, block.ID)
	case "update":
		if !sh.requireArgs(args, 2, "update <id> <text...>") {
			break
		}
		sh.session.Update(args[0], restOfLine(line, 2))
		sh.printf("ok\n")
	case "delete", "rm":
		if sh.requireArgs(args, 1, "delete <id>") {
			sh.session.Delete(args[0])
			sh.printf("ok\n")
		}
	case "up":
		if sh.requireArgs(args, 1, "up <id>") {
			sh.session.MoveUp(args[0])
			sh.list()
		}
	case "down":
		if sh.requireArgs(args, 1, "down <id>") {
			sh.session.MoveDown(args[0])
			sh.list()
		}
	case "edit":
		if !sh.requireArgs(args, 1, "edit <id>") {
			break
		}
		if draft, ok := sh.session.BeginEdit(args[0]); ok {
			sh.printf("editing %s: %s\n", args[0], draft)
		} else {
			sh.printf("ok\n")
		}
	case "draft":
		if !sh.requireArgs(args, 2, "draft <id> <text...>") {
			break
		}
		if !sh.session.SetDraft(args[0], restOfLine(line, 2)) {
			sh.printf("block %s is not being edited\n", args[0])
			break
		}
		sh.printf("ok\n")
	case "confirm":
		if sh.requireArgs(args, 1, "confirm <id>") {
			sh.session.ConfirmEdit(args[0])
			sh.printf("ok\n")
		}
	case "cancel":
		if sh.requireArgs(args, 1, "cancel <id>") {
			sh.session.CancelEdit(args[0])
			sh.printf("ok\n")
		}
	case "save":
		sh.persist(ctx, false)
	case "publish":
		sh.persist(ctx, true)
	case "reload":
		if err := sh.session.Reload(ctx); err != nil {
			sh.printf("error: %v\n", err)
			break
		}
		sh.banner()
	case "clear":
		sh.session.ClearError()
		sh.printf("ok\n")
	default:
		sh.printf("unknown command %q, type 'help'\n", cmd)
	}
	return false
}

func (sh *Shell) persist(ctx context.Context, publish bool) {
	var (
		page content.Page
		err  error
	)
	if publish {
		page, err = sh.session.Publish(ctx)
	} else {
		page, err = sh.session.SaveDraft(ctx)
	}
	if err != nil {
		sh.printf("error: %v\n", err)
		return
	}

	if publish {
		sh.printf("published %q (%d blocks)\n", page.Slug, len(page.Content))
	} else {
		sh.printf("saved draft of %q (%d blocks)\n", page.Slug, len(page.Content))
	}
}

func (sh *Shell) list() {
	blocks := sh.session.Blocks()
	if len(blocks) == 0 {
		sh.printf("(no blocks)\n")
		return
	}
	for i, block := range blocks {
		marker := " "
		text := block.Content
		if draft, editing := sh.session.Draft(block.ID); editing {
			marker = "*"
			text = draft
		}
		sh.printf("%s%d. [%s] %s %s\n", marker, i, block.Type, block.ID, text)
	}
}

func (sh *Shell) requireArgs(args []string, n int, usage string) bool {
	if len(args) < n {
		sh.printf("usage: %s\n", usage)
		return false
	}
	return true
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

// restOfLine returns the line after its first n whitespace separated fields,
// keeping the spacing inside the remainder.
func restOfLine(line string, n int) string {
	rest := strings.TrimLeft(line, " \t")
	for i := 0; i < n; i++ {
		idx := strings.IndexAny(rest, " \t")
		if idx < 0 {
			return ""
		}
		rest = strings.TrimLeft(rest[idx:], " \t")
	}
	return strings.TrimRight(rest, " \t\r")
}
