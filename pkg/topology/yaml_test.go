package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

const fixtureYAML = `
architecture:
  - core_id: c1
    speed_factor: 1.0
    scheduler: RM
budgets:
  - component_id: comp1
    scheduler: RM
    budget: 5
    period: 10
    core_id: c1
    priority: 1
tasks:
  - task_name: t1
    wcet: 2
    bcet: 1
    period: 10
    component_id: comp1
    priority: 1
`

func TestFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	topo, err := FromYAML(path)
	require.NoError(t, err)
	require.Contains(t, topo.Cores, hssmodel.CoreID("c1"))
}
