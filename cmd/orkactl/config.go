package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Config resources that can be read or written
const resourceAPIFqdn = "api-fqdn"

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change the orkactl configuration",
	}

	getCmd := &cobra.Command{
		Use:       "get RESOURCE",
		Short:     "Print a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{resourceAPIFqdn},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != resourceAPIFqdn {
				return fmt.Errorf("unknown config resource %q, expected %q", args[0], resourceAPIFqdn)
			}

			cfg, err := a.config()
			if err != nil {
				return err
			}
			a.printer.Log(cfg.OrkaURL)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set RESOURCE VALUE",
		Short: "Change a configuration value",
		Long: `Change a configuration value and save it to the config file.

The orka API always listens on port 3000; any port given in the URL
is replaced.

Examples:
  orkactl config set api-fqdn https://orka.example.com`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{resourceAPIFqdn},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != resourceAPIFqdn {
				return fmt.Errorf("unknown config resource %q, expected %q", args[0], resourceAPIFqdn)
			}

			cfg, err := a.config()
			if err != nil {
				return err
			}
			next, err := cfg.WithOrkaURL(args[1])
			if err != nil {
				return err
			}
			if err := next.Save(a.configPath); err != nil {
				return err
			}

			a.cfg = next
			a.printer.Success("API address set to " + next.OrkaURL)
			return nil
		},
	}

	configCmd.AddCommand(getCmd)
	configCmd.AddCommand(setCmd)
	return configCmd
}
