package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/liralabs/lirabot/internal/config"
	"github.com/liralabs/lirabot/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	themeNames := make([]string, len(theme.All))
	for i, t := range theme.All {
		themeNames[i] = t.Name
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default backend").
				Description("Used when --backend is not given.").
				Options(huh.NewOptions("groq", "openai", "gemini", "mock")...).
				Value(&cfg.General.DefaultBackend),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(themeNames...)...).
				Value(&cfg.General.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Groq API key").
				Description("Leave blank to keep the GROQ_API_KEY env var or current value.").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.API.GroqAPIKey),
			huh.NewInput().
				Title("OpenAI API key").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.API.OpenAIAPIKey),
			huh.NewInput().
				Title("Gemini API key").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.API.GeminiAPIKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Product catalog URL").
				Description("Remote catalog endpoint. Blank uses the local products.json.").
				Value(&cfg.Catalog.URL),
			huh.NewInput().
				Title("Catalog API key").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Catalog.APIKey),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Saved to %s\n", config.ConfigPath())
	return nil
}
