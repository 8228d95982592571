package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vquery/pkg/equal"
)

func equalCmd() *cobra.Command {
	return compareCmd(
		"equal <a> <b>",
		"Report whether two JSON values are deeply equal",
		`Compare two JSON documents given inline.

Prints true or false and exits 1 when the values differ.

Examples:
  vquery equal '{"a":1,"b":[2]}' '{"b":[2],"a":1}'`,
		equal.DeepEqual,
	)
}

func includesCmd() *cobra.Command {
	return compareCmd(
		"includes <a> <b>",
		"Report whether JSON value a includes b",
		`Check that every field present in b is present in a with an
included value. Fields of a that b does not mention are ignored.

Prints true or false and exits 1 when a does not include b.

Examples:
  vquery includes '{"id":1,"name":"x"}' '{"id":1}'`,
		equal.DeepIncludes,
	)
}

func compareCmd(use, short, long string, compare func(a, b any) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseJSON([]byte(args[0]), false)
			if err != nil {
				return err
			}
			b, err := parseJSON([]byte(args[1]), false)
			if err != nil {
				return err
			}

			ok := compare(a, b)
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if !ok {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}
