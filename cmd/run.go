package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/algority/algority/internal/app"
	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/evaluation"
	"github.com/algority/algority/internal/llm"
	"github.com/algority/algority/internal/prefetch"
	"github.com/algority/algority/internal/questiongen"
	"github.com/algority/algority/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// An empty problemID starts at the problem picker.
func runApp(cmd *cobra.Command, problemID string) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	logger, err := newLogger(dbPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	provider, err := llm.NewProviderFromEnv(ctx, st.Events(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "No LLM provider configured:", err)
		fmt.Fprintln(os.Stderr, "Set ALGORITY_ANTHROPIC_API_KEY, ALGORITY_OPENAI_API_KEY or ALGORITY_GEMINI_API_KEY.")
		return err
	}

	cache := prefetch.NewMemoryCache(prefetch.DefaultTTL)
	warmer := prefetch.NewWarmer(cache, logger, 45*time.Second)
	defer warmer.Close()

	svc := coaching.NewService(
		st.Sessions(),
		st.Messages(),
		questiongen.New(provider, questiongen.DefaultConfig()),
		evaluation.NewService(provider, evaluation.DefaultConfig()),
		cache,
		warmer,
		logger,
	)

	return app.Run(app.Options{Service: svc, ProblemID: problemID})
}

// newLogger writes structured logs next to the database when
// ALGORITY_DEBUG is set; stdout belongs to the TUI. Otherwise logging
// is discarded.
func newLogger(dbPath string) (*zap.Logger, error) {
	if os.Getenv("ALGORITY_DEBUG") == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(filepath.Dir(dbPath), "algority.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	return cfg.Build()
}
