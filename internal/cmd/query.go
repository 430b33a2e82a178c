package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/shearch/internal/buffer"
	"github.com/gravitrone/shearch/internal/catalog"
	"github.com/gravitrone/shearch/internal/index"
)

// QueryCmd returns the `shearch query` command.
func QueryCmd(flags *Flags) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "query <tag>...",
		Short: "Print the commands carrying every given tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := flags.Open()
			if err != nil {
				return err
			}
			defer s.Close()

			out := c.OutOrStdout()
			for _, rec := range s.Index.Query(queryTags(args)) {
				if long {
					fmt.Fprintf(out, "%s\t%s\t%s\n", rec.Text, rec.Description, strings.Join(rec.Tags, ","))
					continue
				}
				fmt.Fprintln(out, rec.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "also print description and tags, tab separated")
	return cmd
}

// TagsCmd returns the `shearch tags` command.
func TagsCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag with the number of commands carrying it",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := flags.Open()
			if err != nil {
				return err
			}
			defer s.Close()

			out := c.OutOrStdout()
			for _, tc := range s.Index.Tags() {
				fmt.Fprintf(out, "%s\t%d\n", tc.Tag, tc.Count)
			}
			return nil
		},
	}
}

// ExpandCmd returns the `shearch expand` command. It prints the matching
// commands with their templates expanded, running computed arguments.
func ExpandCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <tag>...",
		Short: "Print matching commands with template arguments filled in",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := flags.Open()
			if err != nil {
				return err
			}
			defer s.Close()

			resolver := s.Resolver()
			out := c.OutOrStdout()
			for _, rec := range s.Index.Query(queryTags(args)) {
				text, err := expand(c, rec, resolver)
				if err != nil {
					s.Logger.Warn("template expansion failed",
						zap.String("record", rec.ID().String()),
						zap.Error(err),
					)
					fmt.Fprintf(c.ErrOrStderr(), "warning: %s: %v\n", rec.Text, err)
					text = rec.Text
				}
				fmt.Fprintln(out, text)
			}
			return nil
		},
	}
}

func expand(c *cobra.Command, rec catalog.Record, resolver buffer.Resolver) (string, error) {
	if rec.Template == nil {
		return rec.Text, nil
	}
	text, _, err := buffer.FormatCommand(c.Context(), rec.Template.Mask, rec.Template.Args, resolver)
	return text, err
}

// queryTags accepts tags as separate arguments or comma separated.
func queryTags(args []string) []string {
	return index.ParseQuery(strings.Join(args, " "))
}
