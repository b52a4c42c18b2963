package jobs

import (
	"context"
	"time"

	"stc-compliance-backend/internal/logger"
	"stc-compliance-backend/internal/registry"
)

// verifyBatchSize caps how many unverified panels one nightly run picks up.
const verifyBatchSize = 500

// reviewReminderAge is how long a submitted installation may wait before the
// admins get nagged about it.
const reviewReminderAge = 48 * time.Hour

// VerifyPanelSerials runs the registry check over panels that have not been
// verified yet, so most serials are already checked by the time an admin
// opens the review screen.
func (jr *JobRunner) VerifyPanelSerials() {
	jr.runWithRecovery("VerifyPanelSerials", func() {
		ctx := context.Background()

		panels, err := jr.store.PanelRepository.ListUnverified(ctx, verifyBatchSize)
		if err != nil {
			logger.Error("Failed to list unverified panels", "error", err)
			return
		}
		if len(panels) == 0 {
			logger.Info("No unverified panels found")
			return
		}

		serials := make([]string, 0, len(panels))
		for _, p := range panels {
			serials = append(serials, p.SerialNumber)
		}

		results, err := jr.verifier.Verify(ctx, serials)
		if err != nil {
			logger.Error("Registry verification failed", "error", err)
			return
		}

		bySerial := make(map[string]registry.SerialResult, len(results))
		for _, r := range results {
			bySerial[r.SerialNumber] = r
		}

		updated := 0
		for _, p := range panels {
			r, ok := bySerial[p.SerialNumber]
			if !ok || !r.Valid() {
				// Leave failures unverified so they are retried and show up
				// during manual review.
				continue
			}
			if err := jr.store.PanelRepository.UpdateVerification(ctx, p.ID, true, r.CECApproved); err != nil {
				logger.Error("Failed to update panel verification", "panel_id", p.ID, "error", err)
				continue
			}
			updated++
		}

		summary := registry.Summarize(results)
		logger.Info("Panel serial verification completed",
			"checked", summary.Total,
			"valid", summary.Valid,
			"duplicates", summary.Duplicates,
			"invalid", summary.Invalid,
			"updated", updated)
	})
}

// SendReviewReminders emails every admin about submitted installations that
// have been sitting in the queue too long.
func (jr *JobRunner) SendReviewReminders() {
	jr.runWithRecovery("SendReviewReminders", func() {
		ctx := context.Background()

		cutoff := time.Now().Add(-reviewReminderAge)
		pending, err := jr.store.InstallationRepository.ListSubmittedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list pending installations", "error", err)
			return
		}
		if len(pending) == 0 {
			logger.Info("No installations awaiting review past the cutoff")
			return
		}

		admins, err := jr.store.UserRepository.ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to list admins", "error", err)
			return
		}

		// pending is ordered oldest first.
		oldest := pending[0].SiteAddress

		sent := 0
		for _, admin := range admins {
			if err := jr.emailSvc.SendReviewReminder(ctx, admin.Email, len(pending), oldest); err != nil {
				logger.Error("Failed to send review reminder", "admin_email", admin.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Review reminders sent", "pending", len(pending), "admins_notified", sent)
	})
}
