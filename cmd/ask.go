package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cosmoconnect/internal/ai"
	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/nasa"
	"cosmoconnect/internal/service"
)

var askCmd = &cobra.Command{
	Use:   "ask <feature> [subject...]",
	Short: "Ask a companion from the command line",
	Long: `Run a single feature against the configured AI backend and print the answer.

Features:
  mood                       Sunny's mood from the last 7 days of CMEs
  perspective <character>    Astronaut / Pilot / Farmer / Photographer
  aurora                     aurora mini-story
  planet <name>              planet fact
  jwst <part>                James Webb Space Telescope part
  parker                     Parker Solar Probe fact
  chat <companion> <msg>     sunny-ar / cosmo-buddy / planet-designer
  story [choice]             one Living Storybook segment`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	flags := askCmd.Flags()
	flags.Duration("timeout", 60*time.Second, "request timeout")
	flags.Bool("json", false, "print the full JSON response")
	flags.String("ai-provider", "", "override the configured AI provider (gemini/openai/azure/ark/mock)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	timeout, _ := cmd.Flags().GetDuration("timeout")
	asJSON, _ := cmd.Flags().GetBool("json")

	aiCfg := cfg.AI
	if provider, _ := cmd.Flags().GetString("ai-provider"); provider != "" {
		aiCfg.Provider = provider
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := ai.NewClient(ctx, &aiCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	space := nasa.NewClient(&cfg.NASA)
	companions := service.NewCompanionService(client, space)

	feature, subject := args[0], strings.Join(args[1:], " ")
	out := cmd.OutOrStdout()

	var resp any
	switch feature {
	case "mood":
		resp = companions.SunnyMood(ctx)
	case "perspective":
		resp, err = companions.Perspective(ctx, subject)
	case "aurora":
		resp = companions.AuroraStory(ctx)
	case "planet":
		resp, err = companions.PlanetFact(ctx, subject)
	case "jwst":
		resp, err = companions.JWSTFact(ctx, subject)
	case "parker":
		resp = companions.ParkerFact(ctx)
	case "chat":
		if len(args) < 3 {
			return fmt.Errorf("usage: ask chat <companion> <message>")
		}
		chat := service.NewChatService(client, nil, nil)
		resp, err = chat.Chat(ctx, args[1], &model.ChatRequest{Message: strings.Join(args[2:], " ")})
	case "story":
		return askStory(ctx, out, service.NewStoryService(client, nil, nil), subject, asJSON)
	default:
		return fmt.Errorf("unknown feature %q", feature)
	}
	if err != nil {
		return err
	}

	return printAnswer(out, resp, asJSON)
}

// askStory 按快照刷新输出，最后打印选项
func askStory(ctx context.Context, out io.Writer, story service.StoryService, choice string, asJSON bool) error {
	updates, err := story.Stream(ctx, &model.StoryRequest{Message: choice})
	if err != nil {
		return err
	}

	var final service.StoryUpdate
	shown := ""
	for u := range updates {
		final = u
		if asJSON {
			continue
		}
		// 快照是累计文本；兜底文案会整体替换已输出的内容
		if strings.HasPrefix(u.Text, shown) {
			fmt.Fprint(out, u.Text[len(shown):])
		} else {
			fmt.Fprint(out, "\n"+u.Text)
		}
		shown = u.Text
	}
	if asJSON {
		return printAnswer(out, final, true)
	}

	fmt.Fprintln(out)
	for i, c := range final.Choices {
		fmt.Fprintf(out, "  %d) %s\n", i+1, c)
	}
	if final.Degraded {
		fmt.Fprintf(os.Stderr, "(fallback: %s)\n", final.Reason)
	}
	return nil
}

func printAnswer(out io.Writer, resp any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	switch r := resp.(type) {
	case model.TextResponse:
		fmt.Fprintln(out, r.Text)
		if r.Degraded {
			fmt.Fprintf(os.Stderr, "(fallback: %s)\n", r.Reason)
		}
	case *model.ChatResponse:
		fmt.Fprintln(out, r.Message)
		if r.Degraded {
			fmt.Fprintf(os.Stderr, "(fallback: %s)\n", r.Reason)
		}
	default:
		return printAnswer(out, resp, true)
	}
	return nil
}
