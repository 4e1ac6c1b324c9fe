package services

import (
	"fmt"
	"sync"

	"jobtrack_backend/internal/email"
	"jobtrack_backend/internal/logger"
	"jobtrack_backend/internal/models"
	"jobtrack_backend/pkg/apperrors"
	"jobtrack_backend/ws"
)

// EventPublisher pushes an event to every live connection of one user.
// Satisfied by *ws.Manager.
type EventPublisher interface {
	Publish(userID string, event *ws.Event)
}

// Notifier fans a job event out to the owner's two delivery channels: one
// email send and one realtime publish per call. The channels are independent
// and best-effort; a failure in either is logged and swallowed, never
// surfaced to the mutation that triggered it. At-most-once, no retries.
type Notifier interface {
	NotifyJobAdded(user *models.User, job *models.Job)
	NotifyJobUpdated(user *models.User, job *models.Job, oldStatus, newStatus models.JobStatus, notes string)
	SendWelcome(user *models.User)

	// Wait blocks until all in-flight deliveries finish. Used on shutdown
	// and in tests; request paths never call it.
	Wait()
}

type notifier struct {
	emailProvider email.Provider
	hub           EventPublisher
	wg            sync.WaitGroup
}

func NewNotifier(emailProvider email.Provider, hub EventPublisher) Notifier {
	return &notifier{
		emailProvider: emailProvider,
		hub:           hub,
	}
}

func (n *notifier) NotifyJobAdded(user *models.User, job *models.Job) {
	message := fmt.Sprintf("New job application added: %s - %s", job.Company, job.Role)

	n.spawn(func() {
		n.sendEmail(user, "New Job Application Added", email.TemplateJobAdded, email.TemplateData{
			"UserName":    user.Name,
			"Company":     job.Company,
			"Role":        job.Role,
			"Status":      job.Status,
			"AppliedDate": job.AppliedDate.Format("2006-01-02"),
		})
	})

	n.spawn(func() {
		n.publish(user.ID, &ws.Event{
			Event:   ws.EventJobAdded,
			Message: message,
			Job:     job,
		})
	})
}

func (n *notifier) NotifyJobUpdated(user *models.User, job *models.Job, oldStatus, newStatus models.JobStatus, notes string) {
	message := fmt.Sprintf("Job status updated: %s - %s is now %s", job.Company, job.Role, newStatus)

	n.spawn(func() {
		n.sendEmail(user, "Job Application Status Updated", email.TemplateJobUpdated, email.TemplateData{
			"UserName":  user.Name,
			"Company":   job.Company,
			"Role":      job.Role,
			"OldStatus": oldStatus,
			"NewStatus": newStatus,
			"Notes":     notes,
		})
	})

	n.spawn(func() {
		n.publish(user.ID, &ws.Event{
			Event:   ws.EventJobUpdated,
			Message: message,
			Job:     job,
		})
	})
}

func (n *notifier) SendWelcome(user *models.User) {
	n.spawn(func() {
		n.sendEmail(user, "Welcome to JobTrack", email.TemplateWelcome, email.TemplateData{
			"UserName": user.Name,
		})
	})
}

func (n *notifier) Wait() {
	n.wg.Wait()
}

func (n *notifier) spawn(task func()) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		task()
	}()
}

// sendEmail reports success only through the log. The transport itself is
// bounded by the provider's timeout.
func (n *notifier) sendEmail(user *models.User, subject, template string, data email.TemplateData) bool {
	if err := n.emailProvider.SendTemplate([]string{user.Email}, subject, template, data); err != nil {
		logger.WithError(apperrors.DeliveryError(err, "email")).Warn("email delivery failed",
			"user_id", user.ID,
			"template", template,
		)
		return false
	}

	logger.Debug("email sent", "user_id", user.ID, "template", template)
	return true
}

// publish pushes the event to every live connection of the user. Dropping it
// when no session is connected is expected, not an error.
func (n *notifier) publish(userID string, event *ws.Event) {
	n.hub.Publish(userID, event)
}
