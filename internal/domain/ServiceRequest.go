package domain

type ServiceRequestStatus string

const (
	ServiceRequestPending    ServiceRequestStatus = "pending"
	ServiceRequestInProgress ServiceRequestStatus = "in_progress"
	ServiceRequestDone       ServiceRequestStatus = "done"
)
