package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/ward-allocator/pkg/core/allocator"
	"github.com/jakechorley/ward-allocator/pkg/core/services"
	"github.com/jakechorley/ward-allocator/pkg/exporter"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Rank stored patients and allocate beds, ventilators and doctors",
		Long: `Rank stored patients by survival × severity and allocate beds, ventilators and doctors greedily.
Pools default to the values in the config file. The stored patient list is not modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pools, err := poolsFromFlags(cmd, app)
			if err != nil {
				return err
			}

			result, err := services.AllocateResources(app.Ctx, app.Database, app.Logger, pools)
			if err != nil {
				return err
			}

			renderAllocation(cmd.OutOrStdout(), result, app.Labels)

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return nil
			}

			var buf bytes.Buffer
			if err := exporter.WriteAllocationXLSX(&buf, result); err != nil {
				return err
			}
			path, err := writeOutputFile(app.Ctx, out, buf.Bytes())
			if err != nil {
				return err
			}

			fmt.Printf("✓ Allocation written to %s\n\n", path)
			return nil
		},
	}

	cmd.Flags().Int("beds", 0, "Total beds (defaults to config pools.beds)")
	cmd.Flags().Int("vents", 0, "Total ventilators (defaults to config pools.ventilators)")
	cmd.Flags().Int("doctors", 0, "Total doctors (defaults to config pools.doctors)")
	cmd.Flags().String("out", "", "Also write the allocation to this .xlsx file")

	return cmd
}

// poolsFromFlags starts from the configured pools and applies any pool flags given
func poolsFromFlags(cmd *cobra.Command, app *AppContext) (allocator.ResourcePools, error) {
	pools := app.Cfg.Pools.ResourcePools()
	flags := cmd.Flags()

	overrides := []struct {
		flag   string
		target *int
	}{
		{"beds", &pools.TotalBeds},
		{"vents", &pools.TotalVentilators},
		{"doctors", &pools.TotalDoctors},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		v, err := flags.GetInt(o.flag)
		if err != nil {
			return pools, err
		}
		*o.target = v
	}

	return pools, nil
}
