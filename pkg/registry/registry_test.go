// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistry = `{
  "version": "1.0.0",
  "lastUpdated": "2025-01-01T00:00:00Z",
  "workers": [
    {
      "id": "find-teams-for-opportunity",
      "displayName": "Find Teams For Opportunity",
      "description": "Scores available teams against an opportunity",
      "category": "matching",
      "version": "1.0.0",
      "taskType": "find-teams-for-opportunity",
      "implementationStatus": "completed",
      "inputSchema": {
        "type": "object",
        "properties": {
          "opportunityId": {"type": "string", "minLength": 1}
        },
        "required": ["opportunityId"]
      },
      "outputSchema": {
        "type": "object",
        "properties": {
          "totalMatches": {"type": "integer", "minimum": 0}
        },
        "required": ["totalMatches"]
      },
      "errorCodes": ["OPPORTUNITY_NOT_FOUND", "MATCH_SEARCH_FAILED"],
      "timeout": "30s",
      "retries": 3,
      "workflows": ["team-matching"],
      "tags": ["matching"]
    }
  ]
}`

func writeTestRegistry(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(testRegistry), 0644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))

	require.NoError(t, err)
	require.Len(t, reg.Workers, 1)
	assert.Equal(t, "find-teams-for-opportunity", reg.Workers[0].TaskType)
	assert.Equal(t, []string{"OPPORTUNITY_NOT_FOUND", "MATCH_SEARCH_FAILED"}, reg.Workers[0].ErrorCodes)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry("does-not-exist.json")
	assert.Error(t, err)
}

func TestByTaskType(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	spec, ok := reg.ByTaskType("find-teams-for-opportunity")
	require.True(t, ok)
	assert.Equal(t, "matching", spec.Category)

	_, ok = reg.ByTaskType("unknown-task")
	assert.False(t, ok)
}

func TestValidateInput(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	t.Run("valid payload", func(t *testing.T) {
		err := reg.ValidateInput("find-teams-for-opportunity", map[string]interface{}{
			"opportunityId": "opp-001",
		})
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := reg.ValidateInput("find-teams-for-opportunity", map[string]interface{}{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opportunityId")
	})

	t.Run("unregistered task type", func(t *testing.T) {
		err := reg.ValidateInput("unknown-task", map[string]interface{}{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered")
	})
}

func TestValidateOutput(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	assert.NoError(t, reg.ValidateOutput("find-teams-for-opportunity", map[string]interface{}{
		"totalMatches": 3,
	}))

	err = reg.ValidateOutput("find-teams-for-opportunity", map[string]interface{}{
		"totalMatches": -1,
	})
	assert.Error(t, err)
}
