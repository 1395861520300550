// Command seed fills the board with sample prompts and comments for local
// development. It goes through the board service so seeded rows obey the
// same validation and identity rules as API-created ones.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/promptboard/promptboard/internal/anon"
	"github.com/promptboard/promptboard/internal/board"
	"github.com/promptboard/promptboard/internal/config"
	"github.com/promptboard/promptboard/internal/database"
	"github.com/promptboard/promptboard/internal/storage/postgres"
)

type seedPrompt struct {
	in       board.CreatePromptInput
	comments []string
}

var samples = []seedPrompt{
	{
		in: board.CreatePromptInput{
			Title:   "Explain a concept with an analogy",
			Content: "Explain {topic} to me using an analogy from everyday life. Keep it under 200 words and end with a one-sentence summary.",
			Tags:    []string{"teaching", "analogy"},
		},
		comments: []string{
			"Works great with technical topics, less so with history.",
			"Try adding 'avoid car analogies' — it loves cars otherwise.",
		},
	},
	{
		in: board.CreatePromptInput{
			Title:   "Code review checklist",
			Content: "Review the following diff as a senior engineer. Focus on correctness first, then naming, then style. List issues by severity.",
			Tags:    []string{"coding", "review"},
		},
		comments: []string{"Pairs well with a diff under 300 lines."},
	},
	{
		in: board.CreatePromptInput{
			Title:   "Weekly meal planner",
			Content: "Plan seven dinners using mostly {cuisine} recipes. I have 30 minutes per night and dislike {ingredient}. Output as a table.",
			Tags:    []string{"cooking", "planning"},
		},
	},
	{
		in: board.CreatePromptInput{
			Title:   "Socratic tutor",
			Content: "Act as a Socratic tutor for {subject}. Never give the answer directly; ask at most one question per turn and wait for my reply.",
			Tags:    []string{"teaching", "socratic"},
		},
		comments: []string{"The one-question-per-turn constraint is what makes this work."},
	},
	{
		in: board.CreatePromptInput{
			Title:   "Commit message from diff",
			Content: "Write a conventional commit message for this diff. Subject under 72 characters, body explaining why, not what.",
			Tags:    []string{"coding", "git"},
		},
	},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Database.URL == "" {
		slog.Error("DATABASE_URL is required to seed")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, cfg.Database.MigrationsPath); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	store := postgres.New(pool)
	svc := board.NewService(store, anon.NewGenerator(cfg.Board.Adjectives, cfg.Board.Nouns), board.Limits{
		MaxPrompts:  cfg.Board.MaxPrompts,
		MaxComments: cfg.Board.MaxComments,
	})

	for _, sample := range samples {
		p, err := svc.CreatePrompt(ctx, sample.in)
		if err != nil {
			slog.Error("seed prompt", "title", sample.in.Title, "error", err)
			os.Exit(1)
		}
		slog.Info("seeded prompt", "id", p.ID, "title", p.Title)

		for _, content := range sample.comments {
			if _, err := svc.CreateComment(ctx, p.ID, board.CreateCommentInput{Content: content}); err != nil {
				slog.Error("seed comment", "prompt", p.ID, "error", err)
				os.Exit(1)
			}
		}
	}
	slog.Info("seeding complete", "prompts", len(samples))
}
