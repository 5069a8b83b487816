package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/workflow"
)

var (
	reviewFile    string
	reviewDBURL   string
	reviewTimeout int
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Import a statement and review each candidate",
	Long: `Runs a full import and then walks through every candidate one at a
time. For each candidate choose keep (k), cancel (c), cancel everything
remaining (a), or quit (q). Cancelling prints the cancellation link and
marks the tracked subscription inactive.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		if reviewFile == "" {
			log.Fatal("error: --file/-f is required")
		}
		dbURL := reviewDBURL
		if dbURL == "" {
			dbURL = os.Getenv("DATABASE_URL")
			if dbURL == "" {
				log.Fatal("error: --db-url or DATABASE_URL environment variable is required")
			}
		}

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Duration(reviewTimeout)*time.Second)
		defer cancelFn()

		flow, db := newFlow(ctx, dbURL)
		defer db.Close()

		summary, err := flow.Run(ctx, reviewFile)
		if err != nil {
			log.Fatalf("error: import failed: %v", err)
		}
		fmt.Printf("Imported: %d created, %d skipped\n\n",
			summary.CreatedCount, summary.SkippedCount)

		reviewLoop(ctx, flow)

		final := flow.Summary()
		fmt.Printf("\nComplete: %d created, %d skipped, %d canceled\n",
			final.CreatedCount, final.SkippedCount, final.CanceledCount)
	},
}

func reviewLoop(ctx context.Context, flow *workflow.Flow) {
	scanner := bufio.NewScanner(os.Stdin)

	for flow.State() == workflow.StateReady {
		cand, ok := flow.Current()
		if !ok {
			break
		}

		fmt.Printf("[%d/%d] %s  %s %s/month",
			flow.Cursor()+1, len(flow.Candidates()), cand.Name, cand.Amount.StringFixed(2), cand.Interval)
		if cand.SubscriptionID == "" {
			fmt.Print("  (not tracked)")
		}
		fmt.Print("\n(k)eep / (c)ancel / cancel (a)ll / (q)uit: ")

		if !scanner.Scan() {
			break
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "c", "cancel":
			flow.Cancel(ctx)
		case "a", "all":
			flow.CancelAll(ctx)
		case "q", "quit":
			return
		default:
			flow.Keep()
		}
	}
}

func printLink(link common.CancelLink) {
	fmt.Printf("  → %s: %s\n", link.Label, link.URL)
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringVarP(&reviewFile, "file", "f", "", "Path to a .pdf or .csv statement (required)")
	reviewCmd.Flags().StringVar(&reviewDBURL, "db-url", "", "PostgreSQL connection URL (or set DATABASE_URL env)")
	reviewCmd.Flags().IntVar(&reviewTimeout, "timeout", 300, "Operation timeout in seconds")

	reviewCmd.MarkFlagRequired("file")
}
