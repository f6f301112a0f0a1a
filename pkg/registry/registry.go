// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*WorkerRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg WorkerRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// ByTaskType returns the registered spec for a Camunda task type.
func (r *WorkerRegistry) ByTaskType(taskType string) (*WorkerSpec, bool) {
	for i := range r.Workers {
		if r.Workers[i].TaskType == taskType {
			return &r.Workers[i], true
		}
	}
	return nil, false
}

// ValidateInput checks a job payload against the worker's registered input
// schema. A worker without an input schema accepts anything.
func (r *WorkerRegistry) ValidateInput(taskType string, payload map[string]interface{}) error {
	spec, ok := r.ByTaskType(taskType)
	if !ok {
		return fmt.Errorf("task type not registered: %s", taskType)
	}
	return validateAgainstSchema(spec.InputSchema, payload)
}

// ValidateOutput checks a worker result against the registered output schema.
func (r *WorkerRegistry) ValidateOutput(taskType string, payload map[string]interface{}) error {
	spec, ok := r.ByTaskType(taskType)
	if !ok {
		return fmt.Errorf("task type not registered: %s", taskType)
	}
	return validateAgainstSchema(spec.OutputSchema, payload)
}

func validateAgainstSchema(schema map[string]interface{}, payload map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("payload invalid: %s", strings.Join(msgs, "; "))
	}
	return nil
}
