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
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/Jepennn/Lexa/internal/adapter/settings"
	"github.com/Jepennn/Lexa/internal/adapter/store"
	"github.com/Jepennn/Lexa/internal/engine/libre"
	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/infrastructure/config"
	"github.com/Jepennn/Lexa/internal/speech"
	"github.com/Jepennn/Lexa/internal/usecase"
)

// translateCmd drives one full translation session from the terminal,
// the same path a selection event takes in a page context.
var translateCmd = &cobra.Command{
	Use:   "translate <text>...",
	Short: "Translate text and optionally save it to a dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text := strings.Join(args, " ")
		saveTo, _ := cmd.Flags().GetString("save")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger := newLogger(cfg)

		kvStore, cleanup, err := openKV(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		settingsPort := settings.New(kvStore)
		if err := settingsPort.EnsureDefaults(ctx); err != nil {
			return fmt.Errorf("initialize settings: %w", err)
		}
		entryStore := store.New(kvStore)

		client := libre.NewClient(cfg.Engine.BaseURL, cfg.Engine.APIKey)
		defer func() { _ = client.Close() }()

		controller := usecase.NewSessionController(
			entryStore, settingsPort, client, speech.Noop{}, nil,
			usecase.WithEngineTimeout(cfg.EngineTimeout()),
			usecase.WithLogger(logger),
		)
		defer controller.Close()

		// Handle runs the session to completion; no bus hop is needed
		// for a one-shot invocation.
		userSettings, err := settingsPort.Load(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		controller.Handle(ctx, entity.ShowTranslation{
			Text:           text,
			Length:         utf8.RuneCountInString(text),
			SourceLang:     userSettings.SourceLang,
			TargetLang:     userSettings.TargetLang,
			VoiceMode:      userSettings.VoiceMode,
			DictionaryMode: userSettings.DictionaryMode,
		})

		view := controller.View()
		switch {
		case view.TranslatedText != "":
			cmd.Println(view.TranslatedText)
		case view.Notice != "":
			return fmt.Errorf("%s", view.Notice)
		default:
			return fmt.Errorf("translation did not complete")
		}

		if saveTo != "" {
			if _, err := controller.Save(ctx, saveTo); err != nil {
				return fmt.Errorf("save to dictionary: %w", err)
			}
			cmd.Println("saved")
		}
		return nil
	},
}

func init() {
	translateCmd.Flags().String("save", "", "dictionary id to save the translation into")
	rootCmd.AddCommand(translateCmd)
}
