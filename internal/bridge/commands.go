// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package bridge

import (
	"fmt"
	"strings"

	"vortexlang.dev/vortex/pkg/vortex"
)

// Commands is implemented by interpreters that support the stateful REPL
// commands. *vortex.Runtime implements it.
type Commands interface {
	Reset() error
	EvalFile(path string) (string, error)
	Bindings() []vortex.Binding
	Kernels() []string
}

// Help lists the REPL commands.
const Help = `Available commands:
  :help          Show this help message
  :exit          Exit the REPL
  :clear         Clear the screen
  :load <file>   Load and execute a Vortex file
  :env           Show global bindings and GPU kernels
  :reset         Reset the interpreter state`

func commandError(format string, args ...any) Outcome {
	return Outcome{Err: &Error{Kind: KindCommand, Message: fmt.Sprintf(format, args...)}}
}

// command runs one ':' line. Aliases follow the usual REPL spellings.
func (b *Bridge) command(line string) Outcome {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case ":help", ":h":
		return Outcome{Text: Help}
	case ":exit", ":quit", ":q":
		return Outcome{Text: "Goodbye!", Action: ActionQuit}
	case ":clear", ":cls":
		return Outcome{Action: ActionClear}
	}

	c, ok := b.interp.(Commands)
	switch name {
	case ":load", ":reset", ":env":
		if !ok {
			return commandError("%s is not supported by this interpreter", name)
		}
	default:
		return commandError("unknown command %s (type :help for commands)", name)
	}

	switch name {
	case ":load":
		if len(args) != 1 {
			return commandError("usage: :load <file>")
		}
		out := b.Load(args[0])
		if !out.OK() {
			return out
		}
		done := "loaded " + args[0]
		if out.Text != "" {
			done = out.Text + "\n" + done
		}
		return Outcome{Text: done}

	case ":reset":
		if err := c.Reset(); err != nil {
			return Outcome{Err: Classify(err)}
		}
		return Outcome{Text: "interpreter state reset"}
	}
	return Outcome{Text: environment(c.Bindings(), c.Kernels())}
}

// environment renders :env output: one "name = value (kind)" line per
// binding, then the kernel list.
func environment(bindings []vortex.Binding, kernels []string) string {
	var b strings.Builder
	if len(bindings) == 0 {
		b.WriteString("no bindings")
	}
	for i, bind := range bindings {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s = %s (%s)", bind.Name, bind.Value, bind.Kind)
	}
	if len(kernels) > 0 {
		fmt.Fprintf(&b, "\nkernels: %s", strings.Join(kernels, ", "))
	}
	return b.String()
}
