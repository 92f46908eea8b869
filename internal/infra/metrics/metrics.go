// Package metrics provides Prometheus metrics for Moodlet: counters and
// gauges for check-ins, points, streaks, badges, and the shop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Check-ins ──────────────────────────────────────────────────────────────

// CheckIns tracks logged mood entries by mood name.
var CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "checkins_total",
	Help:      "Total mood check-ins by mood.",
}, []string{"mood"})

// CheckInsCapped tracks entries logged after the daily earning cap.
var CheckInsCapped = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "checkins_capped_total",
	Help:      "Check-ins that earned no points due to the daily cap.",
})

// ─── Points ─────────────────────────────────────────────────────────────────

// PointsEarned tracks points credited by source.
var PointsEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "points_earned_total",
	Help:      "Total points earned by source.",
}, []string{"source"})

// PointsSpent tracks points debited in the shop.
var PointsSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "points_spent_total",
	Help:      "Total points spent on shop purchases.",
})

// PointsBalance tracks the current balance.
var PointsBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moodlet",
	Name:      "points_balance_current",
	Help:      "Current point balance.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakCurrent tracks the current streak length in days.
var StreakCurrent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moodlet",
	Name:      "streak_current_days",
	Help:      "Current streak length in days.",
})

// StreakLongest tracks the longest streak ever reached.
var StreakLongest = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moodlet",
	Name:      "streak_longest_days",
	Help:      "Longest streak ever reached in days.",
})

// StreakResets tracks streak breaks.
var StreakResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "streak_resets_total",
	Help:      "Total times the streak reset to 1.",
})

// ─── Badges & Shop ──────────────────────────────────────────────────────────

// BadgesUnlocked tracks badge unlocks by badge id.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked by id.",
}, []string{"badge"})

// ShopPurchases tracks purchases by item kind.
var ShopPurchases = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "shop_purchases_total",
	Help:      "Total shop purchases by item kind.",
}, []string{"kind"})

// ShopPurchasesRefused tracks refused purchases by reason.
var ShopPurchasesRefused = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "shop_purchases_refused_total",
	Help:      "Purchases refused by reason (owned, premium, milestone, balance).",
}, []string{"reason"})

// ─── Reviews ────────────────────────────────────────────────────────────────

// ReviewsCompleted tracks completed weekly reviews.
var ReviewsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodlet",
	Name:      "reviews_completed_total",
	Help:      "Total weekly reviews completed.",
})
