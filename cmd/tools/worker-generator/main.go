// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"housing-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Directory    string
	Description  string
	InputFields  []Field
	OutputFields []Field
	ErrorCodes   []ErrorCode
}

// Field is one struct field derived from a schema property.
type Field struct {
	GoName   string
	GoType   string
	JSONName string
	Required bool
}

type ErrorCode struct {
	Var  string
	Code string
}

// parseSchema extracts properties from a JSON schema object
func parseSchema(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if list, ok := schema["required"].([]interface{}); ok {
		for _, r := range list {
			if name, ok := r.(string); ok {
				required[name] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		fields = append(fields, Field{
			GoName:   goName(name),
			GoType:   goTypeFromJSONType(details["type"]),
			JSONName: name,
			Required: required[name],
		})
	}
	return fields
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// goName turns a camelCase property into an exported Go identifier,
// keeping the Id suffix idiomatic.
func goName(prop string) string {
	if prop == "" {
		return prop
	}
	name := strings.ToUpper(prop[:1]) + prop[1:]
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

func errorVar(code string) string {
	parts := strings.Split(strings.ToLower(code), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return "Err" + strings.Join(parts, "")
}

func newWorkerData(act *registry.Activity) WorkerData {
	data := WorkerData{
		Name:         act.DisplayName,
		PackageName:  strings.ReplaceAll(act.ID, "-", ""),
		TaskType:     act.TaskType,
		Directory:    mapCategoryToDirectory(act.Category),
		Description:  act.Description,
		InputFields:  parseSchema(act.InputSchema),
		OutputFields: parseSchema(act.OutputSchema),
	}
	for _, code := range act.ErrorCodes {
		data.ErrorCodes = append(data.ErrorCodes, ErrorCode{Var: errorVar(code), Code: code})
	}
	return data
}

const configTemplate = `// internal/workers/{{ .Directory }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Directory }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .GoName }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}{{ if not .Required }},omitempty{{ end }}\"`" + `
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .GoName }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}\"`" + `
{{- end }}
}
`

const handlerTemplate = `// internal/workers/{{ .Directory }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"
{{- if .ErrorCodes }}
	"errors"
{{- end }}

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)
{{ if .ErrorCodes }}
var (
{{- range .ErrorCodes }}
	{{ .Var }} = errors.New("{{ .Code }}")
{{- end }}
)
{{ end }}
// Handler: {{ .Description }}
type Handler struct {
	config    *Config
	responder camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

var templates = map[string]string{
	"config.go":  configTemplate,
	"models.go":  modelsTemplate,
	"handler.go": handlerTemplate,
}

// generate writes the worker scaffold under root and returns the worker directory.
// Existing files are left untouched.
func generate(root string, data WorkerData) (string, []string, error) {
	workerDir := filepath.Join(root, data.Directory, data.TaskType)
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create %s: %w", workerDir, err)
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		path := filepath.Join(workerDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		tmpl, err := template.New(name).Parse(templates[name])
		if err != nil {
			return "", nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		file, err := os.Create(path)
		if err != nil {
			return "", nil, fmt.Errorf("create %s: %w", path, err)
		}
		err = tmpl.Execute(file, data)
		file.Close()
		if err != nil {
			return "", nil, fmt.Errorf("render %s: %w", name, err)
		}
		written = append(written, path)
	}
	return workerDir, written, nil
}

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., publish-alert)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "", "Path to the activity registry JSON file (embedded registry when empty)")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator --activity <id> [--output <dir>] [--registry <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/worker-generator --activity publish-alert")
		os.Exit(1)
	}

	reg, err := registry.Load(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}

	act, ok := reg.Find(*activity)
	if !ok {
		fmt.Printf("Activity '%s' not found in registry\n", *activity)
		os.Exit(1)
	}

	dir, written, err := generate(*outputDir, newWorkerData(act))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("Generated %s\n", path)
	}

	fmt.Printf("\nWorker scaffold at: %s\n", dir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute in handler.go\n")
	fmt.Printf("  2. Write tests in handler_test.go\n")
	fmt.Printf("  3. Register the worker in cmd/worker-manager/workers.go\n")
	fmt.Printf("  4. Add its settings under workers: in configs/config.yaml\n")
}

// mapCategoryToDirectory maps registry categories to directory names
func mapCategoryToDirectory(category string) string {
	if category == "" {
		return "misc"
	}
	return strings.ToLower(category)
}
