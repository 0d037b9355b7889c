package main

import (
	"errors"

	"github.com/cuemby/orka/pkg/display"
	"github.com/cuemby/orka/pkg/log"
	"github.com/cuemby/orka/pkg/metrics"
	"github.com/cuemby/orka/pkg/workload"
	"github.com/spf13/cobra"
)

// validateFile runs the workload pipeline on path and records the outcome.
func (a *app) validateFile(path string) (*workload.Tree, error) {
	timer := metrics.NewTimer()
	tree, err := workload.ValidateFile(path)
	timer.ObserveDuration(metrics.ValidationDuration)

	if err != nil {
		result := "error"
		var werr *workload.Error
		if errors.As(err, &werr) {
			result = string(werr.Kind)
		}
		metrics.RecordValidation("", result)
		log.Logger.Debug().Err(err).Str("file", path).Msg("Workload rejected")
		return nil, err
	}

	kind := workloadKind(tree)
	metrics.RecordValidation(kind, metrics.ResultOK)
	kindLog := log.WithWorkloadKind(kind)
	kindLog.Debug().Str("file", path).Dur("duration", timer.Duration()).Msg("Workload validated")
	return tree, nil
}

func workloadKind(tree *workload.Tree) string {
	wl, ok := tree.Get("workload")
	if !ok {
		return ""
	}
	sub, ok := wl.(*workload.Tree)
	if !ok {
		return ""
	}
	kind, _ := sub.Get("kind")
	s, _ := kind.(string)
	return s
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate -f FILE",
		Short: "Validate a workload file without sending it",
		Long: `Validate a workload file and print its normalized form.

The file is checked exactly as 'orkactl create workload' would check it,
but nothing is sent to the orka API.

Examples:
  # Print the canonical form of a container workload
  orkactl validate -f web.yaml

  # Print the request body that would be sent
  orkactl validate -f network.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			output, _ := cmd.Flags().GetString("output")

			tree, err := a.validateFile(file)
			if err != nil {
				return err
			}
			return a.printer.Value(tree, display.Format(output))
		},
	}

	cmd.Flags().StringP("file", "f", "", "Workload YAML file (required)")
	cmd.Flags().StringP("output", "o", string(display.FormatYAML), "Output format (yaml, json)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create workloads and instances",
	}

	workloadCmd := &cobra.Command{
		Use:   "workload -f FILE",
		Short: "Validate a workload file and create it",
		Long: `Create a workload from a YAML file.

Examples:
  # Create a container workload
  orkactl create workload -f web.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			output, _ := cmd.Flags().GetString("output")

			tree, err := a.validateFile(file)
			if err != nil {
				return err
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.CreateWorkload(cmd.Context(), tree)
			if err != nil {
				return err
			}

			a.printer.Success("Workload created")
			return a.printer.Value(resp, display.Format(output))
		},
	}
	workloadCmd.Flags().StringP("file", "f", "", "Workload YAML file (required)")
	workloadCmd.Flags().StringP("output", "o", string(display.FormatJSON), "Output format (json, yaml, table)")
	_ = workloadCmd.MarkFlagRequired("file")

	instanceCmd := &cobra.Command{
		Use:   "instance",
		Short: "Create an instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.CreateInstance(cmd.Context())
			if err != nil {
				return err
			}

			a.printer.Success("Instance created")
			return a.printer.Value(resp, display.Format(output))
		},
	}
	instanceCmd.Flags().StringP("output", "o", string(display.FormatJSON), "Output format (json, yaml, table)")

	createCmd.AddCommand(workloadCmd)
	createCmd.AddCommand(instanceCmd)
	return createCmd
}

func newGetCmd(a *app) *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show workloads and instances",
	}

	workloadCmd := &cobra.Command{
		Use:   "workload [ID]",
		Short: "Show one workload, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.GetWorkload(cmd.Context(), optionalID(args))
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			return a.printer.Value(resp, display.Format(output))
		},
	}
	workloadCmd.Flags().StringP("output", "o", string(display.FormatJSON), "Output format (json, yaml, table)")

	instanceCmd := &cobra.Command{
		Use:   "instance [ID]",
		Short: "Show one instance, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.GetInstance(cmd.Context(), optionalID(args))
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			return a.printer.Value(resp, display.Format(output))
		},
	}
	instanceCmd.Flags().StringP("output", "o", string(display.FormatJSON), "Output format (json, yaml, table)")

	getCmd.AddCommand(workloadCmd)
	getCmd.AddCommand(instanceCmd)
	return getCmd
}

func newDeleteCmd(a *app) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete workloads and instances",
	}

	workloadCmd := &cobra.Command{
		Use:   "workload ID",
		Short: "Delete a workload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if _, err := c.DeleteWorkload(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("Workload deleted: " + args[0])
			return nil
		},
	}

	instanceCmd := &cobra.Command{
		Use:   "instance ID",
		Short: "Delete an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if _, err := c.DeleteInstance(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("Instance deleted: " + args[0])
			return nil
		},
	}

	deleteCmd.AddCommand(workloadCmd)
	deleteCmd.AddCommand(instanceCmd)
	return deleteCmd
}

func optionalID(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
