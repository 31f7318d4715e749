package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"filetug/internal/common"
	"filetug/internal/container"
	settingsDomain "filetug/internal/domain/settings"

	"github.com/spf13/cobra"
)

func newSettingsCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change user settings",
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(func(c *container.Container) error {
				snapshot := c.GetSettingsStore().Snapshot()
				if asJSON {
					data, err := json.MarshalIndent(snapshot, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return nil
				}

				keys := make([]string, 0, len(snapshot))
				for k := range snapshot {
					keys = append(keys, string(k))
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", k, snapshot[settingsDomain.Key(k)])
				}
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single setting",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := lookupKey(args[0])
			if err != nil {
				return usageError{err}
			}
			return env.run(func(c *container.Container) error {
				fmt.Fprintln(cmd.OutOrStdout(), c.GetSettingsStore().Get(key))
				return nil
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "Change a setting. The value is read as JSON when possible (true, 2.5) and as a plain string otherwise.",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := lookupKey(args[0])
			if err != nil {
				return usageError{err}
			}
			value := parseValue(args[1])
			return env.run(func(c *container.Container) error {
				if c.GetSettingsStore().Set(key, value) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, c.GetSettingsStore().Get(key))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged (%v)\n", key, c.GetSettingsStore().Get(key))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(listCmd, getCmd, setCmd)
	return cmd
}

func lookupKey(name string) (settingsDomain.Key, error) {
	for _, k := range settingsDomain.AllKeys {
		if string(k) == name {
			return k, nil
		}
	}
	return "", common.NewSettingsError("lookup", name, common.ErrUnknownSetting)
}

// parseValue decodes JSON scalars and falls back to the raw string
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
