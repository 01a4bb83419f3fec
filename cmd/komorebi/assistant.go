package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/komorebi/internal/assistant"
	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/ui"
)

func newKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set [KEY]",
		Short: "Store the API key (reads stdin when KEY is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				if key, err = readSecret(cmd); err != nil {
					return err
				}
			}
			kv, err := a.store()
			if err != nil {
				return err
			}
			if err := assistant.SaveAPIKey(cmd.Context(), kv, a.ns, key); err != nil {
				return err
			}
			return out(cmd, "API key saved.\n")
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kv, err := a.store()
			if err != nil {
				return err
			}
			if err := assistant.ClearAPIKey(cmd.Context(), kv, a.ns); err != nil {
				return err
			}
			return out(cmd, "API key removed.\n")
		},
	})
	return cmd
}

func readSecret(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logErrf("Gemini API key: ")
		b, err := term.ReadPassword(int(f.Fd()))
		logErrf("\n")
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return line, nil
}

// newAssistant wires Gemini and, when configured, the Weaviate knowledge base.
func (a *app) newAssistant(cmd *cobra.Command) (*assistant.Assistant, error) {
	kv, err := a.store()
	if err != nil {
		return nil, err
	}
	key, err := assistant.ResolveAPIKey(cmd.Context(), kv, a.ns)
	if err != nil {
		return nil, err
	}
	s := a.settings
	client, err := assistant.NewGeminiClient(cmd.Context(), key, s.Model, s.EmbedModel)
	if err != nil {
		return nil, err
	}
	opts := assistant.Options{MatchThreshold: s.MatchThreshold, MatchCount: s.MatchCount}
	if s.WeaviateURL == "" {
		return assistant.New(client, nil, nil, opts, a.log), nil
	}
	kb, err := assistant.NewWeaviateKnowledgeBase(s.WeaviateURL, s.WeaviateClass)
	if err != nil {
		a.log.Warn("knowledge base unavailable, answering from the local library", zap.Error(err))
		return assistant.New(client, nil, nil, opts, a.log), nil
	}
	return assistant.New(client, client, kb, opts, a.log), nil
}

func newAskCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask your animal spirit for guidance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("question is empty")
			}
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			asst, err := a.newAssistant(cmd)
			if err != nil {
				return err
			}
			items, quotes := assistant.SelectContext(query, cfg.Library)
			return a.answer(cmd, asst, query, items, quotes, cfg.Persona, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer without markdown rendering")
	return cmd
}

func newExploreCmd(a *app) *cobra.Command {
	var raw bool
	kinds := make([]string, len(assistant.ExploreKinds))
	for i, k := range assistant.ExploreKinds {
		kinds[i] = string(k)
	}
	cmd := &cobra.Command{
		Use:       "explore " + strings.Join(kinds, "|"),
		Short:     "Deep-dive into one of the day's cards",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			date := a.date()
			content := daily.Select(date, cfg.Library)
			prompt, err := assistant.ExplorePrompt(assistant.ExploreKind(args[0]), assistant.ExploreInput{
				Model:        content.Model,
				Productivity: content.Productivity,
				Quote:        content.Quote,
				Investor:     content.Investor,
				Workout:      daily.WorkoutFor(date, cfg.Workouts),
			})
			if err != nil {
				return err
			}
			asst, err := a.newAssistant(cmd)
			if err != nil {
				return err
			}
			items, quotes := assistant.FullContext(cfg.Library)
			return a.answer(cmd, asst, prompt, items, quotes, cfg.Persona, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer without markdown rendering")
	return cmd
}

func (a *app) answer(cmd *cobra.Command, asst *assistant.Assistant, query string, items []model.LibraryItem, quotes []string, persona model.PersonaConfig, raw bool) error {
	ans, err := asst.Ask(cmd.Context(), query, items, quotes, persona)
	if err != nil {
		return err
	}
	text := ans.Text
	if !raw && stdoutIsTerminal(cmd) {
		text = a.renderMarkdown(text)
	}
	if err := out(cmd, "%s\n", strings.TrimRight(text, "\n")); err != nil {
		return err
	}
	if len(ans.Sources) == 0 {
		return nil
	}
	if err := out(cmd, "\n%s\n", ui.H2.Render("Sources")); err != nil {
		return err
	}
	for _, doc := range ans.Sources {
		if err := out(cmd, "- %s\n", doc.SourceTitle()); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		a.log.Debug("markdown renderer unavailable", zap.Error(err))
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		a.log.Debug("markdown render failed", zap.Error(err))
		return text
	}
	return rendered
}

func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
