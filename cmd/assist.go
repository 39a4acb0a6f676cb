package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/folioctl/folio/agent"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "starts an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `folio assist [initial prompt]

  Starts an interactive session with the AI assistant. The assistant can
  read the dashboard, fetch consensus prices and search the web to answer
  questions about the portfolio. Requires Gemini credentials in the
  environment.

`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(err)
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewTrader(), agent.NewAdvisor(*portfolioFile))
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
