package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-fetcher/internal/app"
	"github.com/jsamuelsen/quote-fetcher/internal/domain"
)

type fetchOptions struct {
	topics      []string
	count       int
	html        bool
	concurrency int
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch quotes for one or more topics and print them",
		Example: "  quotes fetch --topic science --count 3\n" +
			"  quotes fetch --topic love --topic motivational --count 2 --html",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.topics, "topic", "t", nil, "Topic to fetch. Repeat for several topics.")
	flags.IntVarP(&opts.count, "count", "n", 1, "Number of quotes to fetch per topic.")
	flags.BoolVar(&opts.html, "html", false, "Print the HTML rendering instead of a numbered list.")
	flags.IntVar(&opts.concurrency, "concurrency", app.DefaultFetchConcurrency, "Maximum topics fetched at once.")

	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func runFetch(cmd *cobra.Command, root *rootOptions, opts *fetchOptions) error {
	if opts.count < 1 {
		return errors.New("--count must be at least 1")
	}

	queries := make([]domain.QuoteQuery, 0, len(opts.topics))

	for _, topic := range opts.topics {
		if strings.TrimSpace(topic) == "" {
			return errors.New("--topic must not be blank")
		}

		queries = append(queries, domain.QuoteQuery{Topic: topic, Count: opts.count})
	}

	// stdout carries the quotes; logs go to stderr.
	logger := root.newLogger(cmd.ErrOrStderr())

	st, err := newQuoteStack(root.cfg, logger, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	results := st.service.FetchAll(cmd.Context(), queries, opts.concurrency)

	return printResults(cmd.OutOrStdout(), results, opts.html)
}

// printResults writes each result in query order. Several results are
// separated by a heading naming the topic.
func printResults(w io.Writer, results []domain.QuoteResult, html bool) error {
	for i, result := range results {
		if len(results) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintf(w, "# %s\n", result.Topic); err != nil {
				return err
			}
		}

		out := domain.RenderText(result)
		if html {
			out = domain.RenderHTML(result)
		}

		if _, err := fmt.Fprint(w, ensureNewline(out)); err != nil {
			return err
		}
	}

	return nil
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}
