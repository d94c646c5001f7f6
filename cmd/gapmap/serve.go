package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/gapmap/internal/config"
	"github.com/jonathan/gapmap/internal/db"
	"github.com/jonathan/gapmap/internal/fetch"
	"github.com/jonathan/gapmap/internal/llm"
	"github.com/jonathan/gapmap/internal/parsing"
	"github.com/jonathan/gapmap/internal/search"
	"github.com/jonathan/gapmap/internal/server"
	"github.com/jonathan/gapmap/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the collaborator HTTP service",
	Long: `Start an HTTP server exposing POST /analyze-resume, POST /learning-resources,
POST /linkedin-profiles and GET /health.

A Gemini API key is required. Without RAPID_API_KEY job search fails, and
without GITHUB_TOKEN or SERP_API_KEY the repository and profile lists are empty.
When DATABASE_URL is set, job descriptions are cached in PostgreSQL.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (default 5001)")
	serveCmd.Flags().String("database", "", "PostgreSQL URL for the job description cache")
	serveCmd.Flags().Duration("timeout", 0, "Per-request timeout (default 2m)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY (or GOOGLE_API_KEY) environment variable is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	llmClient, err := llm.NewClient(ctx, llmConfig(cfg), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = openCache(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
	}

	svc := buildServices(cfg, llmClient, database)
	srvCfg := server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxDocumentBytes,
		RequestTimeout: cfg.RequestTimeout,
	}
	if database != nil {
		srvCfg.DB = database
	}

	srv, err := server.New(srvCfg, svc)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

func llmConfig(cfg *config.Config) *llm.Config {
	c := llm.DefaultConfig()
	if cfg.GeminiModel != "" {
		c = c.WithModel(llm.TierStandard, cfg.GeminiModel).WithModel(llm.TierLite, cfg.GeminiModel)
	}
	return c
}

// openCache connects to PostgreSQL, creates the cache table and prunes
// expired rows.
func openCache(ctx context.Context, databaseURL string) (*db.DB, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	if n, err := database.DeleteExpiredJobDescriptions(ctx); err != nil {
		log.Printf("[serve] pruning expired job descriptions failed: %v", err)
	} else if n > 0 {
		log.Printf("[serve] pruned %d expired job description sets", n)
	}
	return database, nil
}

// buildServices wires the providers into the three stage services. A nil
// database disables the job description cache.
func buildServices(cfg *config.Config, client llm.Client, database *db.DB) server.Services {
	opts := &fetch.Options{
		Timeout:   cfg.RequestTimeout,
		UserAgent: fetch.DefaultUserAgent,
	}

	var jobs services.JobSource = search.NewJobSearcher(cfg.RapidAPIKey, opts)
	if database != nil {
		jobs = &services.CachedJobSource{Source: jobs, Cache: database, TTL: cfg.JobCacheTTL}
	}

	return server.Services{
		Extraction: &services.Extraction{
			Jobs:     jobs,
			Analyzer: parsing.NewSkillAnalyzer(client),
			JobLimit: cfg.JobDescriptions,
		},
		Resources: &services.Resources{
			LLM:       client,
			Repos:     search.NewRepoSearcher(cfg.GitHubToken, opts),
			RepoLimit: cfg.RepositoriesPerSkill,
		},
		Profiles: &services.Profiles{
			Source: search.NewProfileSearcher(cfg.SerpAPIKey, opts),
			Limit:  cfg.Profiles,
		},
	}
}
