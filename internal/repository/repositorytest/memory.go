// Package repositorytest provides an in-process repository for tests.
package repositorytest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"housing-workers/internal/models"
	"housing-workers/internal/repository"
)

// Memory is a repository.Repository held in process. Records are copied on
// the way in and out, and filters apply to the same JSON fields Postgres uses.
type Memory[T models.Record] struct {
	mu      sync.RWMutex
	records map[string][]byte
	order   []string
	gets    int
}

func NewMemory[T models.Record]() *Memory[T] {
	return &Memory[T]{records: map[string][]byte{}}
}

func key(organizationID, id string) string {
	return organizationID + "\x00" + id
}

// Gets reports how many times Get reached the store.
func (m *Memory[T]) Gets() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gets
}

func (m *Memory[T]) Get(_ context.Context, organizationID, id string) (T, error) {
	m.mu.Lock()
	m.gets++
	data, ok := m.records[key(organizationID, id)]
	m.mu.Unlock()

	var rec T
	if !ok {
		return rec, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	err := json.Unmarshal(data, &rec)
	return rec, err
}

func (m *Memory[T]) Put(_ context.Context, record T) error {
	if record.GetOrganizationID() == "" || record.GetID() == "" {
		return fmt.Errorf("put: organization id and id are required")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	k := key(record.GetOrganizationID(), record.GetID())
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[k]; !exists {
		m.order = append(m.order, k)
	}
	m.records[k] = data
	return nil
}

func (m *Memory[T]) Query(_ context.Context, filter repository.Filter) ([]T, error) {
	if filter.OrganizationID == "" {
		return nil, fmt.Errorf("query: organization id is required")
	}

	type row struct {
		fields map[string]interface{}
		data   []byte
	}

	m.mu.RLock()
	var rows []row
	for _, k := range m.order {
		data := m.records[k]
		var fields map[string]interface{}
		if err := json.Unmarshal(data, &fields); err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		if fmt.Sprint(fields["organizationId"]) != filter.OrganizationID {
			continue
		}
		if !matches(fields, filter.Equals) {
			continue
		}
		rows = append(rows, row{fields: fields, data: data})
	}
	m.mu.RUnlock()

	if filter.OrderBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].fields[filter.OrderBy], rows[j].fields[filter.OrderBy]
			if filter.Descending {
				return less(filter.OrderBy, b, a)
			}
			return less(filter.OrderBy, a, b)
		})
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var rec T
		if err := json.Unmarshal(r.data, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// less mirrors the Postgres ordering: timestamp fields compare as instants,
// everything else as text.
func less(field string, a, b interface{}) bool {
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	if repository.TimestampFields[field] {
		ta, errA := time.Parse(time.RFC3339Nano, sa)
		tb, errB := time.Parse(time.RFC3339Nano, sb)
		if errA == nil && errB == nil {
			return ta.Before(tb)
		}
	}
	return sa < sb
}

func matches(fields, equals map[string]interface{}) bool {
	for k, want := range equals {
		got, ok := fields[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}
