package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"universal-mapper/convert"
	"universal-mapper/primitive"
)

type convertOptions struct {
	from string
	to   string
	dump bool
}

func newConvertCommand(root *rootOptions) *cobra.Command {
	opts := convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert --to KIND [--from KIND] VALUE",
		Short: "Convert a value with the built-in conversion registry",
		Long: "The value is read as a string and, when --from is given, first converted to that kind.\n" +
			"Kinds are named like Go types: int, int64, uint8, float64, bool, string, time, duration.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.from, "from", primitive.KindString.Name(), "Kind the value is read as")
	flags.StringVar(&opts.to, "to", "", "Kind to convert to")
	flags.BoolVar(&opts.dump, "dump", false, "Dump the result with its Go type")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(cmd *cobra.Command, root *rootOptions, opts convertOptions, value string) error {
	from, err := primitive.ParseKind(opts.from)
	if err != nil {
		return err
	}

	to, err := primitive.ParseKind(opts.to)
	if err != nil {
		return err
	}

	reg := convert.Default()

	var src any = value
	if from != primitive.KindString {
		if src, err = reg.Convert(value, from.Type()); err != nil {
			return err
		}
	}

	root.logger.Debug("converting",
		zap.Stringer("from", from.Type()),
		zap.Stringer("to", to.Type()),
		zap.Any("value", src),
	)

	res, err := reg.Convert(src, to.Type())
	if err != nil {
		return err
	}

	if opts.dump {
		spew.Fdump(cmd.OutOrStdout(), res)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), res)
	return nil
}
