package helper

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"kage_vpn_store/constants"
	"kage_vpn_store/database"
	"kage_vpn_store/model"
	"kage_vpn_store/notify"
)

var expiryScheduler gocron.Scheduler

// SendExpiryReminders warns customers whose delivered VPN accounts expire
// within the next three days. Each order is only warned once.
func SendExpiryReminders(notifier notify.Dispatcher) {
	log.Println("[CRON] SendExpiryReminders triggered")

	db := database.DB
	cutoff := time.Now().Add(72 * time.Hour)

	var orders []model.Order
	if err := db.
		Where("status = ?", constants.ORDER_COMPLETED).
		Where("vpn_expiry_date IS NOT NULL AND vpn_expiry_date <= ? AND vpn_expiry_date > ?", cutoff, time.Now()).
		Where("vpn_expiry_notified = ?", false).
		Find(&orders).Error; err != nil {
		log.Printf("expiry reminder scan failed: %v", err)
		return
	}

	for _, order := range orders {
		if order.VPNCredentials == nil || order.VPNCredentials.ExpiryDate == nil {
			continue
		}
		var user model.User
		if err := db.First(&user, order.UserId).Error; err != nil {
			log.Printf("expiry reminder: no user for order %s: %v", order.PublicCode, err)
			continue
		}

		notifier.Send(notify.KindExpiryReminder, user.Email, map[string]any{
			"orderCode":    order.PublicCode,
			"customerName": user.Name,
			"expiryDate":   order.VPNCredentials.ExpiryDate.Format("02 Jan 2006"),
		})

		if err := db.Model(&model.Order{}).Where("id = ?", order.ID).
			Update("vpn_expiry_notified", true).Error; err != nil {
			log.Printf("expiry reminder: cannot mark order %s: %v", order.PublicCode, err)
		}
	}
}

func StartExpiryReminderScheduler(notifier notify.Dispatcher) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("MMT", int(6.5*3600))),
	)
	if err != nil {
		log.Fatal(err)
	}

	expiryScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(9, 0, 0),
			),
		),
		gocron.NewTask(SendExpiryReminders, notifier),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Expiry reminder scheduler started (09:00 MMT)")
}

func StopExpiryReminderScheduler() {
	if expiryScheduler != nil {
		if err := expiryScheduler.Shutdown(); err != nil {
			log.Printf("expiry scheduler shutdown: %v", err)
		}
	}
}
