// internal/workers/application/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

var (
	ErrTemplateNotFound       = errors.New("TEMPLATE_NOT_FOUND")
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config    *Config
	email     EmailSender
	sms       SMSSender
	log       repository.Repository[*models.Notification]
	responder camunda.Responder
	logger    logger.Logger
	newID     func() string
	now       func() time.Time
}

// NewHandler wires the delivery channels. A nil sender disables its channel.
func NewHandler(
	config *Config,
	email EmailSender,
	sms SMSSender,
	log repository.Repository[*models.Notification],
	responder camunda.Responder,
	lg logger.Logger,
) *Handler {
	return &Handler{
		config:    config,
		email:     email,
		sms:       sms,
		log:       log,
		responder: responder,
		logger:    lg.WithFields(map[string]interface{}{"taskType": TaskType}),
		newID:     func() string { return uuid.New().String() },
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	jobCtx := camunda.JobContext(client)

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.responder.Fail(jobCtx, client, job, apperrors.NewParseError(err))
		return
	}

	ctx, cancel := context.WithTimeout(jobCtx, h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Fail(jobCtx, client, job, err)
		return
	}

	h.responder.Complete(jobCtx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	tmpl, exists := templates[input.NotificationType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, input.NotificationType)
	}

	data := map[string]interface{}{
		"notificationType": input.NotificationType,
		"applicationId":    input.ApplicationID,
		"priority":         input.Priority,
	}
	for k, v := range input.Metadata {
		data[k] = v
	}

	subject := renderTemplate(tmpl.Subject, data)
	body := renderTemplate(tmpl.Body, data)

	emailTo := input.RecipientEmail
	if tmpl.Staff {
		emailTo = h.config.StaffEmail
	}

	var attempted, delivered []string
	var lastErr error

	if h.config.EmailEnabled && h.email != nil && emailTo != "" {
		attempted = append(attempted, ChannelEmail)
		if _, err := h.email.SendEmail(ctx, emailTo, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error":            err,
				"notificationType": input.NotificationType,
			})
			metrics.NotificationsSent.WithLabelValues(ChannelEmail, StatusFailed).Inc()
			lastErr = err
		} else {
			metrics.NotificationsSent.WithLabelValues(ChannelEmail, StatusSent).Inc()
			delivered = append(delivered, ChannelEmail)
		}
	}

	if h.config.SMSEnabled && h.sms != nil && input.RecipientPhone != "" && !tmpl.Staff && h.wantsSMS(input) {
		attempted = append(attempted, ChannelSMS)
		if _, err := h.sms.SendSMS(ctx, input.RecipientPhone, body); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error":            err,
				"notificationType": input.NotificationType,
			})
			metrics.NotificationsSent.WithLabelValues(ChannelSMS, StatusFailed).Inc()
			lastErr = err
		} else {
			metrics.NotificationsSent.WithLabelValues(ChannelSMS, StatusSent).Inc()
			delivered = append(delivered, ChannelSMS)
		}
	}

	// Nothing reached the recipient: fail so the broker retries. A partial
	// delivery completes as failed to avoid resending the delivered channel.
	if len(attempted) > 0 && len(delivered) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNotificationSendFailed, lastErr)
	}

	status := StatusDisabled
	switch {
	case len(attempted) == 0:
	case len(delivered) == len(attempted):
		status = StatusSent
	default:
		status = StatusFailed
	}

	sentAt := h.now()
	notification := &models.Notification{
		ID:               h.newID(),
		OrganizationID:   input.OrganizationID,
		NotificationType: input.NotificationType,
		ApplicationID:    input.ApplicationID,
		Channels:         delivered,
		Status:           status,
		SentAt:           sentAt,
	}
	if lastErr != nil {
		notification.Error = lastErr.Error()
	}
	h.record(ctx, notification)

	if delivered == nil {
		delivered = []string{}
	}
	return &Output{
		NotificationID: notification.ID,
		Status:         status,
		Channels:       delivered,
		SentAt:         sentAt.Format(time.RFC3339),
	}, nil
}

// wantsSMS is true for decisions and for notifications at the SMS priority.
func (h *Handler) wantsSMS(input *Input) bool {
	if h.config.SMSPriority != "" && input.Priority == h.config.SMSPriority {
		return true
	}
	if input.NotificationType == TypeApplicationStatusUpdated {
		status, _ := input.Metadata["status"].(string)
		return status == "approved" || status == "denied"
	}
	return false
}

func (h *Handler) record(ctx context.Context, n *models.Notification) {
	if h.log == nil || n.OrganizationID == "" {
		return
	}
	if err := h.log.Put(ctx, n); err != nil {
		h.logger.Warn("notification log insert failed", map[string]interface{}{
			"error":          err,
			"notificationId": n.ID,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
