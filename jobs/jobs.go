package jobs

import (
	"fmt"
	"time"

	"earnbot/logger"
	"earnbot/notify"
	"earnbot/services"

	"go.uber.org/zap"
)

const (
	giftPurgeInterval = time.Hour
	digestHour        = 23
	digestMinute      = 59
)

// Start launches the housekeeping schedulers. Both run off wall-clock
// triggers and never touch the live balance-mutation path.
func Start() {
	go runGiftPurge()
	go runDailyDigest()
	logger.Info("scheduled jobs started")
}

func runGiftPurge() {
	ticker := time.NewTicker(giftPurgeInterval)
	for range ticker.C {
		purged, err := services.PurgeExpiredGiftCodes()
		if err != nil {
			logger.Error("expired gift code cleanup failed", zap.Error(err))
			continue
		}
		if purged > 0 {
			logger.Info("expired gift codes cleaned up", zap.Int64("purged", purged))
		}
	}
}

func runDailyDigest() {
	for {
		time.Sleep(untilNextDigest(time.Now()))

		stats, err := services.TodayStats()
		if err != nil {
			logger.Error("daily stats failed", zap.Error(err))
			continue
		}

		notify.Admins(fmt.Sprintf(
			"📊 <b>Daily Stats (%s)</b>\n\n"+
				"👥 New Users: %d\n"+
				"💰 Withdrawals: %d\n"+
				"💸 Total Withdrawn: ₹%.2f\n"+
				"🎁 Gift Claims: %d",
			time.Now().Format("02/01/2006"),
			stats.NewUsers, stats.Withdrawals, stats.TotalWithdrawn, stats.GiftClaims,
		))
	}
}

func untilNextDigest(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), digestHour, digestMinute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
