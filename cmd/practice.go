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
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jepennn/Lexa/internal/repository"
	"github.com/Jepennn/Lexa/internal/usecase"
)

// practiceCmd runs a flashcard drill in the terminal: show one side,
// wait for Enter, reveal the other.
var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Drill saved words with flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		dictionaryID, _ := cmd.Flags().GetString("dictionary")
		noShuffle, _ := cmd.Flags().GetBool("no-shuffle")
		translationFirst, _ := cmd.Flags().GetBool("translation-first")

		return withStore(cmd, func(entryStore repository.EntryStore) error {
			practice := usecase.NewPracticeUsecase(entryStore)
			deck, err := practice.BuildDeck(cmd.Context(), usecase.PracticeOptions{
				DictionaryID:  dictionaryID,
				Shuffle:       !noShuffle,
				ShowWordFirst: !translationFirst,
			})
			if err != nil {
				return err
			}
			if deck.Len() == 0 {
				cmd.Println("no cards to practice, save some words first")
				return nil
			}

			reader := bufio.NewReader(os.Stdin)
			for {
				position, total := deck.Progress()
				cmd.Printf("[%d/%d] %s", position, total, deck.Shown())
				if _, err := reader.ReadString('\n'); err != nil {
					cmd.Println()
					return nil
				}
				deck.Flip()
				cmd.Printf("        %s\n", deck.Shown())
				if !deck.Next() {
					cmd.Println("done")
					return nil
				}
			}
		})
	},
}

func init() {
	practiceCmd.Flags().String("dictionary", "", "limit to one dictionary id (default: all)")
	practiceCmd.Flags().Bool("no-shuffle", false, "keep entries in newest-first order")
	practiceCmd.Flags().Bool("translation-first", false, "show the translation side first")
	rootCmd.AddCommand(practiceCmd)
}
