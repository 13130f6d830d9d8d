package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedbackSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_feedback_submitted_total",
		Help: "Total number of public feedback submissions stored.",
	})

	ContactsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_contacts_received_total",
		Help: "Total number of contact inquiries stored.",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_order_status_transitions_total",
		Help: "Total number of order status transitions, by resulting status.",
	},
		[]string{"status"},
	)

	InvoicesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_invoices_rendered_total",
		Help: "Total number of invoice PDFs generated.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
