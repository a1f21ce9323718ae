// Package command parses the text form of the wordle command.
package command

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

const DefaultPrefix = "!wordle"

type Kind int

const (
	KindNone Kind = iota
	KindToday
	KindCustom
	KindArchive
	KindDelete
	// KindHelp carries text to send back as is.
	KindHelp
)

type Command struct {
	Kind Kind
	// Name is the custom series name, URL-unescaped.
	Name string
	// StartDate is the raw MM/DD/YYYY argument of custom, empty when omitted.
	StartDate string
	// Thread is the raw thread argument of archive and delete.
	Thread string
	Output string
}

var dateLike = regexp.MustCompile(`^[0-9]+/[0-9/]*$`)

// Parse parses the words following the prefix. Errors are meant to be shown
// to the user.
func Parse(prefix string, args []string) (Command, error) {
	if args == nil {
		args = []string{}
	}
	var (
		out bytes.Buffer
		res Command
	)
	root := newRoot(prefix, &res)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return Command{}, err
	}
	if res.Kind == KindNone {
		// A --help flag prints without running any command.
		res.Kind = KindHelp
		res.Output = out.String()
	}
	return res, nil
}

// Usage returns the help text of the root command, or of sub when it names
// a subcommand.
func Usage(prefix, sub string) string {
	args := []string{"help"}
	if sub != "" {
		args = append(args, sub)
	}
	c, err := Parse(prefix, args)
	if err != nil {
		return err.Error()
	}
	return c.Output
}

func newRoot(prefix string, res *Command) *cobra.Command {
	root := &cobra.Command{
		Use:               prefix,
		Short:             "Create today's Wordle spoiler thread",
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(_ *cobra.Command, _ []string) error {
			res.Kind = KindToday
			return nil
		},
	}

	custom := &cobra.Command{
		Use:                "custom name [start_date]",
		Short:              "Create a custom thread",
		Long:               "Create today's spoiler thread for a custom series. start_date is MM/DD/YYYY and defaults to the Wordle start date.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				res.Kind = KindHelp
				res.Output = cmd.UsageString()
				return nil
			}
			res.Kind = KindCustom
			if len(args) > 1 && dateLike.MatchString(args[len(args)-1]) {
				res.StartDate = args[len(args)-1]
				args = args[:len(args)-1]
			}
			res.Name = unescapeName(args)
			return nil
		},
	}

	threadCmd := func(name, short string, kind Kind) *cobra.Command {
		return &cobra.Command{
			Use:   name + " [thread]",
			Short: short,
			Long:  short + ". thread is a #thread mention or a thread ID and defaults to the current thread.",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				res.Kind = kind
				if len(args) == 1 {
					res.Thread = args[0]
				}
				return nil
			},
		}
	}

	help := &cobra.Command{
		Use:   "help [command]",
		Short: "Display help",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := root
			if len(args) == 1 {
				sub, _, err := root.Find(args)
				if err != nil || sub == root {
					return fmt.Errorf("unknown help topic %q", args[0])
				}
				target = sub
			}
			var buf bytes.Buffer
			target.SetOut(&buf)
			if err := target.Help(); err != nil {
				return err
			}
			res.Kind = KindHelp
			res.Output = buf.String()
			return nil
		},
	}

	root.AddCommand(
		custom,
		threadCmd("archive", "Archive a thread", KindArchive),
		threadCmd("delete", "Delete a thread", KindDelete),
	)
	root.SetHelpCommand(help)
	return root
}

func unescapeName(words []string) string {
	name := strings.Join(words, " ")
	if s, err := url.PathUnescape(name); err == nil {
		return s
	}
	return name
}
