package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"file-gateway/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcilePrefix string
	reconcileBucket string
	applyReconcile  bool
	dryRunReconcile bool
	yesConfirm      bool
)

// reconcileCmd compares the audit trail with the bucket.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the file event trail with the bucket",
	Long: `Reports objects without an upload event and upload events whose object is gone.
Optionally repairs the trail by recording the missing events.

Examples:
  # Report only
  file-gateway reconcile

  # Repair with interactive confirmation
  file-gateway reconcile --apply

  # Repair a prefix without prompting
  file-gateway reconcile --prefix invoices/ --apply --yes`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcilePrefix, "prefix", "", "only reconcile objects under this prefix")
	reconcileCmd.Flags().StringVar(&reconcileBucket, "bucket", "", "bucket (defaults to the configured bucket)")
	reconcileCmd.Flags().BoolVar(&applyReconcile, "apply", false, "record the missing events")
	reconcileCmd.Flags().BoolVar(&dryRunReconcile, "dry-run", false, "force dry-run (no mutations even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "auto-confirm (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	svc, l, err := newFilesService()
	if err != nil {
		return err
	}
	defer l.Sync()

	l.Info("Planning reconciliation...", zap.String("prefix", reconcilePrefix))
	plan, err := svc.Reconcile(cmd.Context(), reconcileBucket, reconcilePrefix)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printReconcileReport(l, plan)

	if !applyReconcile {
		l.Info("No actions requested. Use --apply to record the missing events.")
		return nil
	}
	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required.")
		return nil
	}

	if !confirmAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying actions...")
	_, executed, err := svc.ApplyReconcile(cmd.Context(), reconcileBucket, reconcilePrefix, reconcile.Options{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply plan after %d actions: %w", executed, err)
	}

	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_audit", s.MissingAudit),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("mismatches", s.Mismatches),
	)

	const maxShow = 5
	for i, action := range plan.Actions {
		if i == maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
			break
		}
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
}

// confirmAction prompts the user for confirmation or uses --yes.
func confirmAction() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to record the missing events: ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(answer) == "yes"
}
