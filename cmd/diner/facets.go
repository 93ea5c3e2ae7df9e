package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var facetsCmd = &cobra.Command{
	Use:       "facets [cuisines|neighborhoods]",
	Short:     "List the distinct cuisines and neighborhoods",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"cuisines", "neighborhoods"},
	RunE:      runFacets,
}

func init() {
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	which := ""
	if len(args) == 1 {
		which = args[0]
	}

	result := make(map[string][]string, 2)
	for _, f := range []struct {
		name  string
		fetch func(context.Context) ([]string, error)
	}{
		{"cuisines", client.Cuisines},
		{"neighborhoods", client.Neighborhoods},
	} {
		if which != "" && which != f.name {
			continue
		}
		values, err := f.fetch(ctx)
		if err != nil {
			return err
		}
		result[f.name] = values
	}

	if outputJSON {
		return printJSON(result)
	}
	for _, name := range []string{"cuisines", "neighborhoods"} {
		values, ok := result[name]
		if !ok {
			continue
		}
		fmt.Printf("%s:\n", name)
		for _, v := range values {
			fmt.Printf("  %s\n", v)
		}
	}
	return nil
}
