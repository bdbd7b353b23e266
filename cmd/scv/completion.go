package main

import (
	"fmt"
	"os"

	urfavecli "github.com/urfave/cli/v2"
)

const bashCompletion = `#!/usr/bin/env bash
_scv_completion() {
  local cur opts
  COMPREPLY=()
  cur="${COMP_WORDS[COMP_CWORD]}"
  opts=$("${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null)
  COMPREPLY=($(compgen -W "${opts}" -- "${cur}"))
  return 0
}
complete -o default -F _scv_completion scv
`

const zshCompletion = `#compdef scv
_scv() {
  local -a opts
  opts=("${(@f)$(${words[@]:0:$CURRENT-1} --generate-bash-completion 2>/dev/null)}")
  _describe 'values' opts
}
compdef _scv scv
`

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh>",
		Action:    handleCompletion,
	}
}

// handleCompletion handles the completion subcommand.
func handleCompletion(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: scv completion <bash|zsh>")
	}

	switch shell := c.Args().First(); shell {
	case "bash":
		_, _ = os.Stdout.WriteString(bashCompletion)
	case "zsh":
		_, _ = os.Stdout.WriteString(zshCompletion)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
	return nil
}
