package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// RunLines reads commands from in and writes their output to out until in
// is exhausted or the context is done. It serves non-interactive input
// such as pipes and scripts.
func RunLines(ctx context.Context, registry *Registry, env *Env, in io.Reader, out io.Writer) error {
	if env.History == nil {
		env.History = NewHistory()
	}
	if env.Registry == nil {
		env.Registry = registry
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		env.History.Add(line)
		fmt.Fprintf(out, "> %s\n", line)

		lines, err := registry.Dispatch(ctx, line, env)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		if len(lines) > 0 {
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			fmt.Fprintln(out)
		}
	}
	return scanner.Err()
}
