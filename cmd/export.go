/*
Copyright © 2025 Jepennn

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jepennn/Lexa/internal/repository"
	"github.com/Jepennn/Lexa/internal/usecase/backup"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all dictionaries and entries as an NDJSON backup",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		outputPath, _ := cmd.Flags().GetString("output")
		gzipEnabled, _ := cmd.Flags().GetBool("gzip")

		if outputPath == "" {
			outputPath = defaultExportFilename(gzipEnabled)
		}
		if !gzipEnabled && outputPath != "-" && strings.HasSuffix(strings.ToLower(outputPath), ".gz") {
			gzipEnabled = true
		}

		var (
			writer   = cmd.OutOrStdout()
			closeFns []func() error
		)
		if outputPath != "-" {
			if dir := filepath.Dir(outputPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			file, openErr := os.Create(outputPath)
			if openErr != nil {
				return fmt.Errorf("create backup file: %w", openErr)
			}
			writer = file
			closeFns = append(closeFns, file.Close)
		}
		if gzipEnabled {
			gz := gzip.NewWriter(writer)
			writer = gz
			closeFns = append([]func() error{gz.Close}, closeFns...)
		}
		defer func() {
			for _, closer := range closeFns {
				if cerr := closer(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}()

		progress := newCLIProgress(cmd.ErrOrStderr())
		err = withStore(cmd, func(entryStore repository.EntryStore) error {
			service := backup.NewService(entryStore, backup.WithProgressReporter(progress))
			return service.Export(cmd.Context(), writer)
		})
		if err != nil {
			return fmt.Errorf("export backup: %w", err)
		}

		if outputPath == "-" {
			cmd.PrintErrln("export complete: written to stdout")
		} else {
			cmd.Printf("export complete: %s\n", outputPath)
		}
		return nil
	},
}

func defaultExportFilename(gzipEnabled bool) string {
	ts := time.Now().UTC().Format("20060102-150405")
	filename := fmt.Sprintf("lexa-backup-%s.jsonl", ts)
	if gzipEnabled {
		filename += ".gz"
	}
	return filename
}

type cliProgress struct {
	out io.Writer
}

func newCLIProgress(out io.Writer) *cliProgress {
	return &cliProgress{out: out}
}

func (p *cliProgress) StartDictionary(name string, entries int) {
	fmt.Fprintf(p.out, "exporting %s (%d entries)\n", name, entries)
}

func (p *cliProgress) FinishDictionary(name string) {
	fmt.Fprintf(p.out, "done %s\n", name)
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "backup output path, - for stdout")
	exportCmd.Flags().Bool("gzip", false, "gzip the output")
}
