package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kayz/slidesmith/internal/compose"
	"github.com/kayz/slidesmith/internal/logger"
	"github.com/kayz/slidesmith/internal/preview"
	"github.com/spf13/cobra"
)

var (
	genTitle     string
	genTopic     string
	genNotes     string
	genAudience  string
	genTone      string
	genLanguage  string
	genOutput    string
	genAsJSON    bool
	genDoPreview bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <variant-id>",
	Short: "Generate one slide from a layout variant",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genTitle, "title", "", "Slide title")
	generateCmd.Flags().StringVar(&genTopic, "topic", "", "What the slide must convey")
	generateCmd.Flags().StringVar(&genNotes, "notes", "", "Free-form authoring notes")
	generateCmd.Flags().StringVar(&genAudience, "audience", "", "Who the deck is for")
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Writing register")
	generateCmd.Flags().StringVar(&genLanguage, "language", "", "Output language")
	generateCmd.Flags().StringVarP(&genOutput, "out", "o", "", "Write assembled HTML to this file")
	generateCmd.Flags().BoolVar(&genAsJSON, "json", false, "Print the full result as JSON")
	generateCmd.Flags().BoolVar(&genDoPreview, "preview", false, "Render a PNG preview of the assembled slide")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	eng, _ := buildEngine(cfg, nil)
	generateFn, err := buildGenerateFunc(cfg)
	if err != nil {
		return err
	}

	slide := compose.SlideContext{Title: genTitle, Topic: genTopic, Notes: genNotes}
	var presCtx *compose.PresentationContext
	if genAudience != "" || genTone != "" || genLanguage != "" {
		presCtx = &compose.PresentationContext{
			Audience: genAudience,
			Tone:     genTone,
			Language: genLanguage,
		}
	}

	result, err := eng.Generate(cmd.Context(), args[0], slide, presCtx, generateFn)
	if err != nil {
		return err
	}

	if !result.Validation.Valid {
		for _, v := range result.Validation.Violations {
			logger.Warn("element %s field %s: %d chars, wanted %d-%d",
				v.ElementID, v.Field, v.Actual, v.Min, v.Max)
		}
	}

	if genAsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if genOutput != "" {
		if err := os.WriteFile(genOutput, []byte(result.Assembled), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("wrote %s\n", genOutput)
	} else {
		fmt.Println(result.Assembled)
	}

	if genDoPreview {
		renderer := preview.NewRenderer(cfg.Preview)
		pngPath, err := renderer.Render(result.Assembled, result.VariantID)
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
		fmt.Printf("preview: %s\n", pngPath)
	}

	return nil
}
