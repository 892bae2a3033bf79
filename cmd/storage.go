package cmd

import (
	"fmt"

	"github.com/csimons/hn/internal/cache"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the cached listing without fetching",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return a.list()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CachePath()
		st, err := cache.Stat(path)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Cache: %s\n", st.Path)
		fmt.Fprintf(out, "Entries: %d\n", st.Entries)
		fmt.Fprintf(out, "Size: %s\n", formatBytes(st.Size))
		fmt.Fprintf(out, "Written: %s\n", st.ModTime.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
