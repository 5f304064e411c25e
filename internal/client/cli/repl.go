// Package cli is a line-oriented terminal front end for the user records
// API. It renders client.State and feeds user commands through a
// client.Controller.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ren-lyn/midterm-lab3/internal/client"
)

const helpText = `Commands:
  list | l            reload the records
  add                 enter a new record
  edit <n>            edit record number n
  set <field> <value> change one draft field (name, email, age, occupation)
  save                submit the current draft
  cancel              discard the draft
  delete <n>          delete record number n (asks for confirmation)
  help                show this text
  quit | exit         leave`

// REPL reads commands from in and writes the rendered state to out.
type REPL struct {
	ctrl   *client.Controller
	in     *bufio.Scanner
	out    io.Writer
	prompt bool
	state  client.State
}

// NewREPL creates a REPL. When prompt is false no prompt strings are
// printed, which suits piped input.
func NewREPL(ctrl *client.Controller, in io.Reader, out io.Writer, prompt bool) *REPL {
	return &REPL{
		ctrl:   ctrl,
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: prompt,
	}
}

// State returns the current state.
func (r *REPL) State() client.State { return r.state }

// Run loads the records and processes commands until quit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	r.state = r.ctrl.Load(ctx, r.state)
	r.render()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := r.readLine(r.promptText())
		if !ok {
			return r.in.Err()
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := fields[0], fields[1:]; cmd {
		case "help", "?":
			fmt.Fprintln(r.out, helpText)
			continue
		case "quit", "exit":
			fmt.Fprintln(r.out, "Bye!")
			return nil
		case "list", "l":
			r.state = r.ctrl.Load(ctx, r.state)
		case "add":
			r.state = client.Cancel(r.state)
			r.fillDraft()
			r.state = r.ctrl.Submit(ctx, r.state)
		case "edit":
			rec, ok := r.recordArg(args)
			if !ok {
				continue
			}
			r.state = client.StartEdit(r.state, rec)
			r.fillDraft()
			r.state = r.ctrl.Submit(ctx, r.state)
		case "set":
			if len(args) < 2 {
				fmt.Fprintln(r.out, "usage: set <field> <value>")
				continue
			}
			r.state = client.EditField(r.state, args[0], strings.Join(args[1:], " "))
		case "save":
			r.state = r.ctrl.Submit(ctx, r.state)
		case "cancel":
			r.state = client.Cancel(r.state)
		case "delete", "rm":
			rec, ok := r.recordArg(args)
			if !ok {
				continue
			}
			r.state = client.RequestDelete(r.state, rec.ID)
			if r.confirm(fmt.Sprintf("Are you sure you want to delete %s? [y/N]", rec.Name)) {
				r.state = r.ctrl.ConfirmDelete(ctx, r.state)
			} else {
				r.state = client.DismissDelete(r.state)
			}
		default:
			fmt.Fprintf(r.out, "Unknown command: %s (type help)\n", cmd)
			continue
		}

		r.render()
	}
}

func (r *REPL) promptText() string {
	if r.state.Editing() {
		return "users (editing)> "
	}
	return "users> "
}

func (r *REPL) readLine(prompt string) (string, bool) {
	if r.prompt {
		fmt.Fprint(r.out, prompt)
	}
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

// fillDraft asks for every draft field. An empty answer keeps the current
// value.
func (r *REPL) fillDraft() {
	steps := []struct {
		field, label, current string
	}{
		{client.FieldName, "Name", r.state.Draft.Name},
		{client.FieldEmail, "Email", r.state.Draft.Email},
		{client.FieldAge, "Age", r.state.Draft.Age},
		{client.FieldOccupation, "Occupation", r.state.Draft.Occupation},
	}
	for _, s := range steps {
		label := s.label
		if s.current != "" {
			label = fmt.Sprintf("%s [%s]", s.label, s.current)
		}
		v, ok := r.readLine(label + ": ")
		if !ok {
			return
		}
		if v != "" {
			r.state = client.EditField(r.state, s.field, v)
		}
	}
}

// confirm always shows the question, even when line prompts are off.
func (r *REPL) confirm(question string) bool {
	fmt.Fprint(r.out, question+" ")
	if !r.in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(r.in.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// recordArg resolves a 1-based position in the rendered list.
func (r *REPL) recordArg(args []string) (client.Record, bool) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "expected one record number")
		return client.Record{}, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(r.state.Records) {
		fmt.Fprintf(r.out, "no record number %s\n", args[0])
		return client.Record{}, false
	}
	return r.state.Records[n-1], true
}

func (r *REPL) render() {
	if r.state.Error != "" {
		fmt.Fprintf(r.out, "! %s\n", r.state.Error)
	}

	if len(r.state.Records) == 0 {
		fmt.Fprintln(r.out, "No users found.")
	} else {
		tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tNAME\tEMAIL\tAGE\tOCCUPATION")
		for i, rec := range r.state.Records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", i+1, rec.Name, rec.Email, rec.Age, rec.Occupation)
		}
		tw.Flush() //nolint:errcheck
	}

	if d := r.state.Draft; d != (client.Draft{}) {
		fmt.Fprintf(r.out, "draft: name=%q email=%q age=%q occupation=%q\n", d.Name, d.Email, d.Age, d.Occupation)
	}
}
