package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/folioctl/folio/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "shows documentation" }
func (*topicCmd) Usage() string {
	return `folio topic [<topic>...]

  Shows documentation for the given topics, 'readme' by default.
  Use '*' to print every topic.

`
}

func (*topicCmd) SetFlags(_ *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
