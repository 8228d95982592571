package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vquery/pkg/stable"
)

func fingerprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint [file]",
		Short: "Print the cache fingerprint of a JSON query key",
		Long: `Read a JSON query key from file (or stdin) and print its fingerprint.

Object keys are sorted at every depth and a bare string key is
treated as a one-element list.

Examples:
  echo '["todos", {"page": 1, "done": false}]' | vquery fingerprint
  vquery fingerprint key.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			data, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			key, err := parseJSON(data, true)
			if err != nil {
				return err
			}

			fp, err := stable.Fingerprint(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fp)
			return nil
		},
	}

	return cmd
}
