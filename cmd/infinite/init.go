// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shayne/yargs"
)

type initFlags struct {
	NoTransient bool `flag:"no-transient" help:"keep full prompts in the scrollback"`
}

type initArgs struct {
	Shell string `pos:"0?" help:"zsh"`
}

func handleInitCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, initFlags, initArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	switch strings.TrimSpace(result.Args.Shell) {
	case "", "zsh":
	default:
		return newUsageError(fmt.Sprintf("unsupported shell %q; only zsh is supported", result.Args.Shell))
	}
	exe, err := os.Executable()
	if err != nil {
		exe = "infinite"
	}
	fmt.Fprint(os.Stdout, zshInit(exe, !result.SubCommandFlags.NoTransient))
	return nil
}

// The prompt text is assigned, not evaluated: prompt_subst stays off so
// segment output cannot run commands. Percent escapes in segment text are
// already doubled by the renderer.
const zshHooks = `# infinite prompt
typeset -g INFINITE_EXIT_STATUS=0

_infinite_precmd() {
  INFINITE_EXIT_STATUS=$?
  export INFINITE_EXIT_STATUS
  PROMPT="$(@EXE@ prompt left --columns "$COLUMNS")"
  RPROMPT="$(@EXE@ prompt right)"
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd _infinite_precmd
`

const zshTransient = `
_infinite_accept_line() {
  PROMPT="$(@EXE@ prompt transient --exit-code "$INFINITE_EXIT_STATUS")"
  RPROMPT=''
  zle .reset-prompt
  zle .accept-line
}

zle -N accept-line _infinite_accept_line
`

func zshInit(exe string, transient bool) string {
	script := zshHooks
	if transient {
		script += zshTransient
	}
	return strings.ReplaceAll(script, "@EXE@", shellQuote(exe))
}

func shellQuote(value string) string {
	if value == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}
