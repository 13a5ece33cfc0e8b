package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"universal-mapper/convert"
	"universal-mapper/primitive"
)

func newPairsCommand(root *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "List the built-in conversion pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPairs(cmd, root, category)
		},
	}

	cmd.Flags().StringVar(&category, "category", primitive.CategoryEnum(primitive.CategoryAll).String(),
		fmt.Sprintf("Categories to list, separated by | or , (%v)", primitive.CategoryNames()))

	return cmd
}

func runPairs(cmd *cobra.Command, root *rootOptions, category string) error {
	allowed, err := primitive.ParseCategory(category)
	if err != nil {
		return err
	}

	reg, err := convert.New(convert.WithCategories(allowed))
	if err != nil {
		return err
	}

	pairs := reg.Pairs()
	root.logger.Debug("listing pairs", zap.Stringer("categories", allowed), zap.Int("count", len(pairs)))

	out := cmd.OutOrStdout()
	for _, p := range pairs {
		kinds := primitive.ConversionPair{
			From: primitive.FromReflectType(p.Src),
			To:   primitive.FromReflectType(p.Dst),
		}
		fmt.Fprintf(out, "%-14s %-14s %s\n", p.Src, p.Dst, primitive.CategoryOf(kinds))
	}

	return nil
}
