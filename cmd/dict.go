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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jepennn/Lexa/internal/adapter/store"
	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/infrastructure/config"
	"github.com/Jepennn/Lexa/internal/repository"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage dictionaries",
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dictionaries, most recently used first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(entryStore repository.EntryStore) error {
			dictionaries, err := entryStore.ListDictionaries(cmd.Context())
			if err != nil {
				return err
			}
			if len(dictionaries) == 0 {
				cmd.Println("no dictionaries yet")
				return nil
			}
			for _, d := range dictionaries {
				cmd.Printf("%s\t%s\t%s\t(updated %s)\n", d.ID, d.Name, d.Icon, d.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var dictCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a dictionary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		icon, _ := cmd.Flags().GetString("icon")
		color, _ := cmd.Flags().GetString("color")
		return withStore(cmd, func(entryStore repository.EntryStore) error {
			created, err := entryStore.CreateDictionary(cmd.Context(), args[0], description,
				entity.DictionaryIcon(icon), entity.DictionaryColor(color))
			if err != nil {
				return err
			}
			cmd.Printf("created dictionary %s (%s)\n", created.Name, created.ID)
			return nil
		})
	},
}

var dictDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a dictionary and all its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(entryStore repository.EntryStore) error {
			if err := entryStore.DeleteDictionary(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("deleted")
			return nil
		})
	},
}

// withStore runs fn against the configured entry store.
func withStore(cmd *cobra.Command, fn func(repository.EntryStore) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	kvStore, cleanup, err := openKV(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(store.New(kvStore))
}

func init() {
	dictCreateCmd.Flags().String("description", "", "dictionary description")
	dictCreateCmd.Flags().String("icon", string(entity.IconBook), "dictionary icon")
	dictCreateCmd.Flags().String("color", string(entity.ColorOrange), "dictionary color")

	dictCmd.AddCommand(dictListCmd, dictCreateCmd, dictDeleteCmd)
	rootCmd.AddCommand(dictCmd)
}
