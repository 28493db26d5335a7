// internal/workers/tenancy/resolve-organization/handler.go
package resolveorganization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "resolve-organization"
)

var (
	ErrOrganizationNotFound = errors.New("ORGANIZATION_NOT_FOUND")
	ErrOrganizationInactive = errors.New("ORGANIZATION_INACTIVE")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)

// OrganizationFinder looks tenants up by slug.
type OrganizationFinder interface {
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
}

type Handler struct {
	config    *Config
	orgs      OrganizationFinder
	redis     redis.Cmdable
	responder camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, orgs OrganizationFinder, rdb redis.Cmdable, responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		orgs:      orgs,
		redis:     rdb,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

func cacheKey(slug string) string {
	return "org:" + slug
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	slug := strings.ToLower(strings.TrimSpace(input.OrganizationSlug))
	if slug == "" {
		slug = h.config.DefaultOrganization
	}

	org, err := h.lookup(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !org.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationInactive, slug)
	}

	return &Output{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		OrganizationSlug: org.Slug,
	}, nil
}

func (h *Handler) lookup(ctx context.Context, slug string) (*models.Organization, error) {
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey(slug)).Result(); err == nil {
			var org models.Organization
			if err := json.Unmarshal([]byte(val), &org); err == nil {
				metrics.CacheLookups.WithLabelValues("organizations", "hit").Inc()
				return &org, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			h.logger.Warn("organization cache unavailable", map[string]interface{}{
				"slug":  slug,
				"error": err,
			})
		}
		metrics.CacheLookups.WithLabelValues("organizations", "miss").Inc()
	}

	org, err := h.orgs.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, slug)
		}
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	if h.redis != nil {
		data, _ := json.Marshal(org)
		if err := h.redis.Set(ctx, cacheKey(slug), data, h.config.CacheTTL).Err(); err != nil {
			h.logger.Warn("organization cache write failed", map[string]interface{}{
				"slug":  slug,
				"error": err,
			})
		}
	}
	return org, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
