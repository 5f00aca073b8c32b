package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/calcctl/internal/calc"
	"github.com/yourorg/calcctl/internal/calcapi"
	"github.com/yourorg/calcctl/internal/render"
)

type constantsOptions struct {
	format string
	remote bool
}

func newConstantsCmd(globals *globalOptions) *cobra.Command {
	opts := &constantsOptions{format: formatTable}

	cmd := &cobra.Command{
		Use:   "constants",
		Short: "List the supported math and physical constants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConstants(cmd, globals, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format: table|json")
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "List constants reported by the calc service")

	return cmd
}

func runConstants(cmd *cobra.Command, globals *globalOptions, opts *constantsOptions) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("unsupported format %q (expected table or json)", opts.format)
	}

	constants, err := gatherConstants(cmd.Context(), globals, opts)
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		return render.JSON(cmd.OutOrStdout(), calcapi.ConstantsResponse{Constants: constants})
	}

	rows := make([][]string, 0, len(constants))
	for _, c := range constants {
		rows = append(rows, []string{c.Name, c.Value})
	}
	return render.Table(cmd.OutOrStdout(), []string{"NAME", "VALUE"}, rows)
}

func gatherConstants(ctx context.Context, globals *globalOptions, opts *constantsOptions) ([]calcapi.ConstantInfo, error) {
	if opts.remote {
		client, err := buildClient(globals.profile)
		if err != nil {
			return nil, err
		}
		constants, err := client.ListConstants(ctx)
		if err != nil {
			return nil, fmt.Errorf("list constants: %w", err)
		}
		return constants, nil
	}

	local := calc.Constants()
	out := make([]calcapi.ConstantInfo, 0, len(local))
	for _, c := range local {
		out = append(out, calcapi.ConstantInfo{Name: c.String(), Value: c.Value().String()})
	}
	return out, nil
}
