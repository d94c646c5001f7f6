package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/gapmap/internal/client"
	"github.com/jonathan/gapmap/internal/fetch"
	"github.com/jonathan/gapmap/internal/observability"
	"github.com/jonathan/gapmap/internal/workflow"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one skill gap session against the service",
	Long: `Upload a resume, compare it with job postings for --domain and print the
skill gap. Skills chosen with --skill (or every missing skill with
--all-missing) get learning resources; --location adds a profile search.
Resources and profiles are requested concurrently.`,
	Example: `  gapmap analyze --file resume.pdf --domain "Data Scientist"
  gapmap analyze -f cv.docx -d "Backend Engineer" --all-missing --location Berlin`,
	RunE: runAnalyze,
}

var (
	analyzeFile       string
	analyzeDomain     string
	analyzeLocation   string
	analyzeSkills     []string
	analyzeAllMissing bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Resume file (PDF, DOC or DOCX)")
	analyzeCmd.Flags().StringVarP(&analyzeDomain, "domain", "d", "", "Target job title")
	analyzeCmd.Flags().StringVarP(&analyzeLocation, "location", "l", "", "Location for the profile search")
	analyzeCmd.Flags().StringSliceVarP(&analyzeSkills, "skill", "s", nil, "Missing skill to get resources for (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeAllMissing, "all-missing", false, "Get resources for every missing skill")
	analyzeCmd.Flags().String("service-url", "", "Collaborator service URL (default http://localhost:5001)")
	analyzeCmd.Flags().Duration("timeout", 0, "Per-request timeout (default 2m)")
	analyzeCmd.Flags().BoolP("verbose", "v", false, "Log every workflow event to stderr")

	_ = analyzeCmd.MarkFlagRequired("file")
	_ = analyzeCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(analyzeCmd)
}

// sessionOptions are the user inputs of one session.
type sessionOptions struct {
	Document   workflow.Document
	Domain     string
	Location   string
	Skills     []string
	AllMissing bool
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(analyzeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	c := client.New(cfg.ServiceURL, &fetch.Options{
		Timeout:   cfg.RequestTimeout,
		UserAgent: fetch.DefaultUserAgent,
	})
	coord := workflow.New(c.Collaborators(), workflow.Options{
		MaxDocumentBytes: cfg.MaxDocumentBytes,
		Sink:             eventLogger(cfg.Verbose),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := sessionOptions{
		Document:   workflow.NewDocument(filepath.Base(analyzeFile), data, ""),
		Domain:     analyzeDomain,
		Location:   analyzeLocation,
		Skills:     analyzeSkills,
		AllMissing: analyzeAllMissing,
	}
	sessionErr := runSession(ctx, coord, opts)

	printSession(cmd.OutOrStdout(), coord.Snapshot())
	return sessionErr
}

// eventLogger logs failures always and every other event when verbose.
func eventLogger(verbose bool) workflow.Sink {
	return workflow.SinkFunc(func(e workflow.Event) {
		switch {
		case e.Kind == workflow.EventFailure:
			log.Printf("[%s] %s", e.Stage, e.Message)
		case verbose:
			log.Printf("[%s] %s %s (state=%s profiles=%s)", e.Stage, e.Kind, e.Message, e.State, e.ProfileState)
		}
	})
}

// runSession drives the coordinator through analysis, then runs the
// resources and profiles branches concurrently. Both branches always run to
// completion; the first error is returned.
func runSession(ctx context.Context, coord *workflow.Coordinator, opts sessionOptions) error {
	if err := coord.StageDocument(opts.Document); err != nil {
		return err
	}
	coord.SetDomain(opts.Domain)
	coord.SetLocation(opts.Location)

	if err := coord.RequestAnalysis(ctx); err != nil {
		return err
	}

	skills := opts.Skills
	if opts.AllMissing {
		if snap := coord.Snapshot(); snap.Analysis != nil {
			skills = snap.Analysis.MissingSkills
		}
	}
	for _, skill := range skills {
		if err := coord.ToggleSkill(skill); err != nil {
			return err
		}
	}

	var g errgroup.Group
	if coord.CanRequestResources() {
		g.Go(func() error { return coord.RequestResources(ctx) })
	}
	if coord.CanRequestProfiles() {
		g.Go(func() error { return coord.RequestProfiles(ctx) })
	}
	return g.Wait()
}

func printSession(out io.Writer, snap workflow.Snapshot) {
	observability.NewPrinter(out).PrintSnapshot(snap)
}
