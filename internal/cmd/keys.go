package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"pollos-backend/internal/admin"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Inspect the key-value store",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		keys, err := admin.ListKeys(rt.store)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tKIND\tBYTES\tVALID")
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", k.Key, k.Kind, k.Bytes, k.Valid)
		}
		return w.Flush()
	},
}

var keysShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		e, err := admin.Show(rt.store, args[0])
		if err != nil {
			return err
		}
		if !e.Valid {
			fmt.Fprintln(cmd.OutOrStdout(), e.Raw)
			return nil
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, e.Value, "", "  "); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		return nil
	},
}

var keysRmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Remove stored keys",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		for _, key := range args {
			e, err := admin.Remove(rt.store, key)
			if err != nil {
				return err
			}
			rt.logger.Warn("store key removed", zap.String("key", key), zap.String("kind", string(e.Kind)))
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", key)
		}
		return nil
	},
}

func init() {
	keysCmd.AddCommand(keysListCmd, keysShowCmd, keysRmCmd)
	rootCmd.AddCommand(keysCmd)
}
