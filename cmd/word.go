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
	"github.com/spf13/cobra"

	"github.com/Jepennn/Lexa/internal/repository"
)

var wordCmd = &cobra.Command{
	Use:   "word",
	Short: "Manage saved words",
}

var wordAddCmd = &cobra.Command{
	Use:   "add <dictionary-id> <text> <translation>",
	Short: "Save a word into a dictionary",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(entryStore repository.EntryStore) error {
			created, err := entryStore.AddEntry(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			cmd.Printf("saved %q (%s)\n", created.Text, created.ID)
			return nil
		})
	},
}

var wordListCmd = &cobra.Command{
	Use:   "list <dictionary-id>",
	Short: "List a dictionary's words, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(entryStore repository.EntryStore) error {
			entries, err := entryStore.ListEntries(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println("no words yet")
				return nil
			}
			for _, e := range entries {
				cmd.Printf("%s\t%s -> %s\n", e.ID, e.Text, e.Translation)
			}
			return nil
		})
	},
}

var wordDeleteCmd = &cobra.Command{
	Use:   "delete <dictionary-id> <entry-id>",
	Short: "Delete a saved word",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(entryStore repository.EntryStore) error {
			if err := entryStore.DeleteEntry(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			cmd.Println("deleted")
			return nil
		})
	},
}

func init() {
	wordCmd.AddCommand(wordAddCmd, wordListCmd, wordDeleteCmd)
	rootCmd.AddCommand(wordCmd)
}
