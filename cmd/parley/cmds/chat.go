package cmds

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-go-golems/parley/pkg/chat"
	"github.com/go-go-golems/parley/pkg/persona"
	"github.com/go-go-golems/parley/pkg/provider"
	"github.com/go-go-golems/parley/pkg/store"
	"github.com/go-go-golems/parley/pkg/tokens"
)

func NewChatCommand() *cobra.Command {
	var (
		model        string
		temperature  float64
		maxTokens    int
		tokenBudget  int
		historySlot  string
		historyDir   string
		personaName  string
		personasFile string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := persona.NewRegistry()
			if personasFile != "" {
				if err := registry.LoadFile(personasFile); err != nil {
					return err
				}
			}

			openAIProvider := provider.NewOpenAIProvider(&provider.APISettings{
				APIKey:  viper.GetString("openai-api-key"),
				BaseURL: viper.GetString("openai-base-url"),
			})

			options := []chat.Option{
				chat.WithModel(model),
				chat.WithTemperature(temperature),
				chat.WithMaxTokens(maxTokens),
				chat.WithTokenBudget(tokenBudget),
				chat.WithPersona(personaName),
			}
			if historySlot != "" {
				options = append(options, chat.WithHistorySlot(historySlot))
			}

			manager, err := chat.NewManager(
				registry,
				tokens.NewTiktokenCounter(),
				store.NewFileStore(historyDir),
				openAIProvider,
				options...,
			)
			if err != nil {
				return err
			}

			return runRepl(cmd, manager)
		},
	}

	cmd.Flags().StringVar(&model, "model", chat.DefaultModel, "Model to request completions from")
	cmd.Flags().Float64Var(&temperature, "temperature", chat.DefaultTemperature, "Sampling temperature (0..2)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", chat.DefaultMaxTokens, "Maximum tokens per response")
	cmd.Flags().IntVar(&tokenBudget, "token-budget", chat.DefaultTokenBudget, "Token budget for the retained conversation")
	cmd.Flags().StringVar(&historySlot, "history-slot", "", "History slot id (default: timestamped unique name)")
	cmd.Flags().StringVar(&historyDir, "history-dir", ".", "Directory for persisted conversation histories")
	cmd.Flags().StringVar(&personaName, "persona", persona.DefaultName, "Initial persona")
	cmd.Flags().StringVar(&personasFile, "personas", "", "YAML file with additional persona definitions")

	return cmd
}

func runRepl(cmd *cobra.Command, manager *chat.Manager) error {
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Conversation slot: %s\n", manager.Slot())
	_, _ = fmt.Fprintln(out, "Commands: /persona NAME, /system TEXT, /reset, /history, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := runReplCommand(out, manager, line)
			if err != nil {
				_, _ = fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				break
			}
			continue
		}

		response := manager.ChatCompletion(cmd.Context(), line)
		_, _ = fmt.Fprintln(out, response)
	}

	return scanner.Err()
}

func runReplCommand(out io.Writer, manager *chat.Manager, line string) (bool, error) {
	command, argument, _ := strings.Cut(line, " ")
	argument = strings.TrimSpace(argument)

	switch command {
	case "/quit", "/exit":
		return true, nil

	case "/persona":
		return false, manager.SetPersona(argument)

	case "/system":
		return false, manager.SetCustomSystemMessage(argument)

	case "/reset":
		manager.ResetConversationHistory()
		_, _ = fmt.Fprintln(out, "conversation reset")
		return false, nil

	case "/history":
		for _, message := range manager.GetConversation() {
			_, _ = fmt.Fprintln(out, message.View())
		}
		return false, nil

	default:
		_, _ = fmt.Fprintf(out, "unknown command %s\n", command)
		return false, nil
	}
}
