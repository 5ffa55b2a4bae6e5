package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liralabs/lirabot/internal/cli"
	"github.com/liralabs/lirabot/internal/config"
)

const interactiveCustomerID = "user_interactive_session"

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	backend := rt.backend()
	if !rt.gw.IsAvailable(backend) {
		fmt.Printf("Warning: backend %q is not configured, responses will fail.\n", backend)
		fmt.Println("Run `lirabot setup` to add API keys.")
	}

	modelName := modelNameFor(backend)
	fmt.Printf("Chatbot ready! (Backend: %s, Model: %s)\n", backend, modelName)
	fmt.Println("Type 'exit' or 'quit' to end session.")
	fmt.Println(strings.Repeat("-", 50))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
			break
		}

		response, cost := rt.mgr.ProcessQuery(cmd.Context(), interactiveCustomerID, input, backend, flagLanguage)

		if strings.HasPrefix(response, "Error:") {
			fmt.Println("Chatbot: " + cli.RenderError(response))
		} else {
			fmt.Printf("Chatbot: %s\n", response)
			fmt.Printf("         %s\n", cli.RenderMuted(fmt.Sprintf("[Cost: $%.6f]", cost)))
		}
		fmt.Println(strings.Repeat("-", 50))
	}

	stats := rt.mgr.SessionStats(interactiveCustomerID)
	if stats.QueryCount > 0 {
		fmt.Println("\nSession Summary:")
		fmt.Printf("Total Queries: %d\n", stats.QueryCount)
		fmt.Printf("Total Tokens: %d\n", stats.TotalTokens)
		fmt.Printf("Total Cost: $%.6f\n", stats.TotalCost)
	}

	return scanner.Err()
}

func modelNameFor(backend string) string {
	switch backend {
	case "groq":
		return config.GroqModelName
	case "openai":
		return config.OpenAIModelName
	case "gemini":
		return config.GeminiModelName
	}
	return backend
}
