package models

type UserRole string
type JobStatus string

const (
	UserRoleApplicant UserRole = "applicant"
	UserRoleAdmin     UserRole = "admin"

	JobStatusApplied   JobStatus = "Applied"
	JobStatusInterview JobStatus = "Interview"
	JobStatusOffer     JobStatus = "Offer"
	JobStatusRejected  JobStatus = "Rejected"
	JobStatusAccepted  JobStatus = "Accepted"
)

// JobStatuses lists every valid status in wire order.
var JobStatuses = []JobStatus{
	JobStatusApplied,
	JobStatusInterview,
	JobStatusOffer,
	JobStatusRejected,
	JobStatusAccepted,
}

func (s JobStatus) Valid() bool {
	for _, known := range JobStatuses {
		if s == known {
			return true
		}
	}
	return false
}
