// reportgen runs the batch pipelines over flat CSV datasets: the chat report,
// the site report (with its persisted aggregate), or the quiz generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
	"github.com/kittyguard/harmreport/internal/chatreport"
	"github.com/kittyguard/harmreport/internal/config"
	"github.com/kittyguard/harmreport/internal/quiz"
	"github.com/kittyguard/harmreport/internal/sitereport"
)

func newLogger() *zap.Logger {
	if os.Getenv("LOG_DEV") != "" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

func buildProvider(cfg config.Config) (ai.Provider, error) {
	reg := ai.NewRegistry()
	reg.Register("openai", func(model string) (ai.Provider, error) {
		if model == "" {
			model = cfg.OpenAIModel
		}
		return ai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, model), nil
	})
	reg.Register("ollama", func(model string) (ai.Provider, error) {
		if model == "" {
			model = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, model), nil
	})
	return reg.Get(cfg.AIProvider, "")
}

func main() {
	var (
		domain   = flag.String("domain", "", "pipeline to run: chat, site, or quiz")
		input    = flag.String("input", "", "input CSV path (default per domain)")
		output   = flag.String("output", "", "output JSON path (default per domain)")
		aggPath  = flag.String("agg", "site_harmfulness_by_id.csv", "site aggregate CSV path (site domain)")
		maxUsers = flag.Int("max-users", 0, "limit site report to the first N users (0 = all)")
		limit    = flag.Int("limit", quiz.DefaultLimit, "flagged rows to process (quiz domain)")
	)
	flag.Parse()

	log := newLogger()
	defer log.Sync()

	cfg := config.Load()
	if err := cfg.RequireGenerationCredential(); err != nil {
		log.Fatal("generation credential", zap.Error(err))
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		log.Fatal("ai provider", zap.Error(err))
	}

	ctx := context.Background()

	switch *domain {
	case "chat":
		in := orDefault(*input, "chat_db.csv")
		out := orDefault(*output, "chat_report.json")
		if _, err := chatreport.Generate(ctx, in, out, provider, log); err != nil {
			log.Fatal("chat report", zap.Error(err))
		}

	case "site":
		in := orDefault(*input, "site_db.csv")
		out := orDefault(*output, "site_report.json")
		if _, err := sitereport.Generate(ctx, in, *aggPath, out, *maxUsers, provider, log); err != nil {
			log.Fatal("site report", zap.Error(err))
		}

	case "quiz":
		in := orDefault(*input, "chat_db.csv")
		out := orDefault(*output, "harmful_output.json")
		if _, err := quiz.Generate(ctx, in, out, *limit, provider, log); err != nil {
			log.Fatal("quiz", zap.Error(err))
		}

	default:
		fmt.Fprintln(os.Stderr, "usage: reportgen -domain chat|site|quiz [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
