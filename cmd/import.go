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
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jepennn/Lexa/internal/repository"
	"github.com/Jepennn/Lexa/internal/usecase/backup"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore dictionaries and entries from an NDJSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inputPath := args[0]
		gzipEnabled, _ := cmd.Flags().GetBool("gzip")

		var (
			reader   io.Reader = cmd.InOrStdin()
			closeFns []func() error
		)
		if inputPath != "-" {
			file, openErr := os.Open(inputPath)
			if openErr != nil {
				return fmt.Errorf("open backup file: %w", openErr)
			}
			reader = file
			closeFns = append(closeFns, file.Close)
			if strings.HasSuffix(strings.ToLower(inputPath), ".gz") {
				gzipEnabled = true
			}
		}
		if gzipEnabled {
			gz, gzErr := gzip.NewReader(reader)
			if gzErr != nil {
				return fmt.Errorf("open gzip stream: %w", gzErr)
			}
			reader = gz
			closeFns = append([]func() error{gz.Close}, closeFns...)
		}
		defer func() {
			for _, closer := range closeFns {
				if cerr := closer(); cerr != nil && err == nil {
					err = cerr
				}
			}
		}()

		var result *backup.ImportResult
		err = withStore(cmd, func(entryStore repository.EntryStore) error {
			var importErr error
			result, importErr = backup.NewService(entryStore).Import(cmd.Context(), reader)
			return importErr
		})
		if err != nil {
			return fmt.Errorf("import backup: %w", err)
		}

		cmd.Printf("import complete: %d dictionaries, %d entries\n",
			result.Dictionaries, result.Entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("gzip", false, "treat input as gzip even without a .gz suffix")
}
