package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const browseHelp = "commands: n next, p prev, v <row> view, r refresh, q quit"

// Browse runs the interactive list loop reading commands from in until "q"
// or end of input. The view must already be mounted.
func (v *RequestsView) Browse(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	v.Render()

	for {
		_, _ = fmt.Fprint(v.out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(v.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "n", "next":
			if fetched, _ := v.Next(ctx); fetched {
				v.Render()
			}
		case "p", "prev":
			if fetched, _ := v.Prev(ctx); fetched {
				v.Render()
			}
		case "r", "refresh":
			if err := v.Refresh(ctx); err == nil {
				v.Render()
			}
		case "v", "view":
			row, err := strconv.Atoi(strings.TrimSpace(arg))
			if err != nil {
				_, _ = fmt.Fprintln(v.out, "usage: v <row>")
				continue
			}
			_, _ = v.Show(row)
		default:
			_, _ = fmt.Fprintln(v.out, browseHelp)
		}
	}
}
