// internal/app/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberhub_transaction_decisions_total",
			Help: "Transaction decisions by outcome",
		},
		[]string{"decision"}, // approved|rejected
	)

	ProvisionedMembersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memberhub_provisioned_members_total",
			Help: "Members created by the provisioning cascade",
		},
	)
	ProvisionedCardsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memberhub_provisioned_cards_total",
			Help: "Identity cards issued",
		},
	)
	ProvisionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memberhub_provision_failures_total",
			Help: "Provisioning cascade failures (approval kept, retry pending)",
		},
	)

	SweptAccountsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberhub_swept_accounts_total",
			Help: "Stale accounts deleted by the lifecycle sweeper",
		},
		[]string{"category"}, // students|members|volunteers
	)

	NotificationsEnqueued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memberhub_notifications_enqueued_total",
			Help: "Notification events accepted by the dispatcher",
		},
	)
	NotificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memberhub_notification_failures_total",
			Help: "Notification deliveries that failed or were dropped",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

// Init registers all collectors. Call once at startup.
func Init() {
	prometheus.MustRegister(DecisionsTotal)
	prometheus.MustRegister(ProvisionedMembersTotal)
	prometheus.MustRegister(ProvisionedCardsTotal)
	prometheus.MustRegister(ProvisionFailures)
	prometheus.MustRegister(SweptAccountsTotal)
	prometheus.MustRegister(NotificationsEnqueued)
	prometheus.MustRegister(NotificationFailures)
}
