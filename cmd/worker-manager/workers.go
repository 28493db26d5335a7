// cmd/worker-manager/workers.go
package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	awsclient "housing-workers/internal/common/aws"
	"housing-workers/internal/common/camunda"
	"housing-workers/internal/common/config"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	// Tenancy
	ro "housing-workers/internal/workers/tenancy/resolve-organization"

	// Applications
	cad "housing-workers/internal/workers/application/complete-application-document"
	ca "housing-workers/internal/workers/application/create-application"
	lad "housing-workers/internal/workers/application/list-application-documents"
	lap "housing-workers/internal/workers/application/list-applications"
	sn "housing-workers/internal/workers/application/send-notification"
	uas "housing-workers/internal/workers/application/update-application-status"

	// Calculators
	cua "housing-workers/internal/workers/calculators/calculate-utility-assistance"
	cl "housing-workers/internal/workers/calculators/calculate-loan"
	ciq "housing-workers/internal/workers/calculators/check-income-qualification"
	"housing-workers/internal/workers/calculators/history"

	// Directory
	la "housing-workers/internal/workers/directory/list-alerts"
	pa "housing-workers/internal/workers/directory/publish-alert"
	sr "housing-workers/internal/workers/directory/search-resources"
	ur "housing-workers/internal/workers/directory/upsert-resource"

	// Contact
	scm "housing-workers/internal/workers/contact/submit-contact-message"
)

const applicationCacheTTL = 10 * time.Minute

// dependencies carries the shared clients every worker is built from.
type dependencies struct {
	cfg       *config.Config
	db        *sql.DB
	redis     *redis.Client
	search    *elasticsearch.Client
	responder camunda.Responder
	logger    logger.Logger

	// nil when the channel is disabled
	email sn.EmailSender
	sms   sn.SMSSender
}

// loadSenders builds the SES and SNS clients for the enabled channels.
func (d *dependencies) loadSenders(ctx context.Context) error {
	aws := d.cfg.Integrations.AWS
	wantEmail := d.cfg.Notifications.Email.Enabled && aws.SES.Enabled
	wantSMS := d.cfg.Notifications.SMS.Enabled && aws.SNS.Enabled
	if !wantEmail && !wantSMS {
		return nil
	}

	awsCfg, err := awsclient.LoadConfig(ctx, aws.Region)
	if err != nil {
		return err
	}
	if wantEmail {
		from := d.cfg.Notifications.Email.FromEmail
		if from == "" {
			from = aws.SES.FromEmail
		}
		d.email = awsclient.NewMailer(awsCfg, from)
	}
	if wantSMS {
		d.sms = awsclient.NewTexter(awsCfg, aws.SNS.DefaultSMSSenderID)
	}
	return nil
}

func (d *dependencies) timeout(taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(d.cfg, taskType).Timeout)
}

type registration struct {
	taskType string
	handler  func() worker.JobHandler
}

// registerWorkers opens a job worker for every enabled task type.
func registerWorkers(client zbc.Client, d *dependencies, pipeline camunda.Pipeline) []*camunda.CamundaWorker {
	log := d.logger

	applications := repository.NewCached[*models.Application](
		repository.NewPostgresRepository[*models.Application](d.db, repository.TableApplications),
		d.redis, "application", applicationCacheTTL, log,
	)
	checklist := repository.NewPostgresRepository[*models.DocumentChecklistItem](d.db, repository.TableDocuments)
	audit := repository.NewAuditLog(d.db)
	calculations := history.NewRecorder(
		repository.NewPostgresRepository[*models.FinancialCalculation](d.db, repository.TableCalculations), log,
	)
	resourceIndex := repository.NewResourceIndex(d.search, d.cfg.Directory.ResourceIndex)
	alerts := repository.NewPostgresRepository[*models.Alert](d.db, repository.TableAlerts)

	registrations := []registration{
		{ro.TaskType, func() worker.JobHandler {
			c := ro.LoadConfig()
			c.Timeout = d.timeout(ro.TaskType)
			c.CacheTTL = time.Duration(d.cfg.Tenancy.CacheTTL) * time.Second
			c.DefaultOrganization = d.cfg.Tenancy.DefaultOrganization
			return ro.NewHandler(c, repository.NewOrganizationStore(d.db), d.redis, d.responder, log).Handle
		}},
		{ca.TaskType, func() worker.JobHandler {
			c := ca.LoadConfig()
			c.Timeout = d.timeout(ca.TaskType)
			return ca.NewHandler(c, applications, checklist, audit, d.responder, log).Handle
		}},
		{uas.TaskType, func() worker.JobHandler {
			c := uas.LoadConfig()
			c.Timeout = d.timeout(uas.TaskType)
			return uas.NewHandler(c, applications, audit, d.responder, log).Handle
		}},
		{cad.TaskType, func() worker.JobHandler {
			c := cad.LoadConfig()
			c.Timeout = d.timeout(cad.TaskType)
			return cad.NewHandler(c, applications, checklist, d.responder, log).Handle
		}},
		{lad.TaskType, func() worker.JobHandler {
			c := lad.LoadConfig()
			c.Timeout = d.timeout(lad.TaskType)
			return lad.NewHandler(c, checklist, d.responder, log).Handle
		}},
		{lap.TaskType, func() worker.JobHandler {
			c := lap.LoadConfig()
			c.Timeout = d.timeout(lap.TaskType)
			return lap.NewHandler(c, applications, d.responder, log).Handle
		}},
		{sn.TaskType, func() worker.JobHandler {
			c := sn.LoadConfig()
			c.Timeout = d.timeout(sn.TaskType)
			c.EmailEnabled = d.email != nil
			c.SMSEnabled = d.sms != nil
			if p := d.cfg.Notifications.SMS.PriorityThreshold; p != "" {
				c.SMSPriority = p
			}
			c.StaffEmail = d.cfg.Notifications.StaffEmail
			notifications := repository.NewPostgresRepository[*models.Notification](d.db, repository.TableNotifications)
			return sn.NewHandler(c, d.email, d.sms, notifications, d.responder, log).Handle
		}},
		{cl.TaskType, func() worker.JobHandler {
			c := cl.LoadConfig()
			c.Timeout = d.timeout(cl.TaskType)
			return cl.NewHandler(c, calculations, d.responder, log).Handle
		}},
		{ciq.TaskType, func() worker.JobHandler {
			c := ciq.LoadConfig()
			c.Timeout = d.timeout(ciq.TaskType)
			return ciq.NewHandler(c, calculations, d.responder, log).Handle
		}},
		{cua.TaskType, func() worker.JobHandler {
			c := cua.LoadConfig()
			c.Timeout = d.timeout(cua.TaskType)
			return cua.NewHandler(c, calculations, d.responder, log).Handle
		}},
		{ur.TaskType, func() worker.JobHandler {
			c := ur.LoadConfig()
			c.Timeout = d.timeout(ur.TaskType)
			resources := repository.NewPostgresRepository[*models.Resource](d.db, repository.TableResources)
			return ur.NewHandler(c, resources, resourceIndex, d.responder, log).Handle
		}},
		{sr.TaskType, func() worker.JobHandler {
			c := sr.LoadConfig()
			c.Timeout = d.timeout(sr.TaskType)
			c.MaxPageSize = d.cfg.Directory.MaxPageSize
			return sr.NewHandler(c, resourceIndex, d.responder, log).Handle
		}},
		{pa.TaskType, func() worker.JobHandler {
			c := pa.LoadConfig()
			c.Timeout = d.timeout(pa.TaskType)
			return pa.NewHandler(c, alerts, d.responder, log).Handle
		}},
		{la.TaskType, func() worker.JobHandler {
			c := la.LoadConfig()
			c.Timeout = d.timeout(la.TaskType)
			return la.NewHandler(c, alerts, d.responder, log).Handle
		}},
		{scm.TaskType, func() worker.JobHandler {
			c := scm.LoadConfig()
			c.Timeout = d.timeout(scm.TaskType)
			c.Card = models.ContactCard(d.cfg.Contact)
			messages := repository.NewPostgresRepository[*models.ContactMessage](d.db, repository.TableContacts)
			return scm.NewHandler(c, messages, d.responder, log).Handle
		}},
	}

	var started []*camunda.CamundaWorker
	for _, r := range registrations {
		if !config.IsWorkerEnabled(d.cfg, r.taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": r.taskType})
			continue
		}
		wcfg := config.GetWorkerConfig(d.cfg, r.taskType)
		started = append(started, camunda.NewWorker(client, r.taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, r.handler(), pipeline))
	}
	return started
}
