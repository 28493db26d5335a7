// Package camundatest provides a Responder that records job outcomes for tests.
package camundatest

import (
	"context"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type Responder struct {
	mu        sync.Mutex
	Completed []interface{}
	Failed    []error
}

func (r *Responder) Complete(_ context.Context, _ worker.JobClient, _ entities.Job, output interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Completed = append(r.Completed, output)
}

func (r *Responder) Fail(_ context.Context, _ worker.JobClient, _ entities.Job, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed = append(r.Failed, err)
}

// Job builds an activated job carrying variables.
func Job(taskType, variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                1,
		Type:               taskType,
		ProcessInstanceKey: 100,
		Retries:            3,
		Variables:          variables,
	}}
}
