package commands

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/core/services"
	"github.com/jakechorley/ward-allocator/pkg/exporter"
)

// ImportPatientsCmd creates the importPatients command
func ImportPatientsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importPatients <file>",
		Short: "Append patients from a JSON array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInputFile(app.Ctx, args[0])
			if err != nil {
				return err
			}

			result, err := services.ImportPatients(app.Ctx, app.Database, app.Logger, data)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Imported %d patients\n", len(result.Imported))
			if len(result.Skipped) > 0 {
				fmt.Printf("\n⚠️  Skipped %d entries:\n", len(result.Skipped))
				for _, s := range result.Skipped {
					fmt.Printf("  ✗ #%d: %s\n", s.Index, s.Reason)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

// ExportPatientsCmd creates the exportPatients command
func ExportPatientsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportPatients",
		Short: "Export stored patients as JSON, CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			format, err := exporter.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if out == "" {
				out = format.DefaultFileName()
			}

			var buf bytes.Buffer
			count, err := services.ExportPatients(app.Ctx, app.Database, app.Logger, format, &buf)
			if err != nil {
				return err
			}

			path, err := writeOutputFile(app.Ctx, out, buf.Bytes())
			if err != nil {
				return err
			}
			app.Logger.Debug("Export written", zap.String("path", path))

			fmt.Printf("\n✓ Exported %d patients to %s\n\n", count, path)
			return nil
		},
	}

	cmd.Flags().String("format", string(exporter.FormatJSON), "Export format: json, csv or xlsx")
	cmd.Flags().String("out", "", "Output file (defaults to patients.<format>)")

	return cmd
}

// readInputFile reads a local file through afs
func readInputFile(ctx context.Context, path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	data, err := afs.New().DownloadWithURL(ctx, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutputFile writes data to a local file through afs and returns its absolute path
func writeOutputFile(ctx context.Context, path string, data []byte) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	if err := afs.New().Upload(ctx, absPath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return absPath, nil
}
