package licensecheck

import (
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/varalys/licensecheck/internal/config"
	"github.com/varalys/licensecheck/internal/scanner/factory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ecosystems",
		Short: "List supported project types and whether their license tools are installed",
		Args:  cobra.NoArgs,
		RunE:  runEcosystems,
	}
	cmd.Flags().StringVarP(&flagDir, "dir", "C", ".", "project directory whose config overrides apply")
	rootCmd.AddCommand(cmd)
}

func runEcosystems(cmd *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(flagDir)
	if err != nil {
		return err
	}
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}
	tools := config.MergeTools(lcfg.GetTools(), gcfg.GetTools())

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Type", "Tool", "Path", "Version")
	for _, src := range factory.All(factory.Config{Dir: abs, Tools: tools}) {
		tool := src.Tool()
		path, ver := "not found", ""
		if p, err := tool.Find(); err == nil {
			path = p
			if v, err := tool.Version(cmd.Context()); err == nil {
				ver = v
			}
		}
		if err := table.Append([]string{string(src.Ecosystem()), tool.Name, path, ver}); err != nil {
			return err
		}
	}
	return table.Render()
}
