package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// yamlFixture is the on-disk shape FromYAML reads. It exists purely for
// demos and tests: a convenient single-file stand-in for the three external
// tables Build actually consumes.
type yamlFixture struct {
	Architecture []ArchitectureRow `yaml:"architecture"`
	Budgets      []BudgetRow       `yaml:"budgets"`
	Tasks        []TaskRow         `yaml:"tasks"`
}

// FromYAML loads a topology fixture from path and builds it. This is a
// demo/test convenience, not a production CSV ingestion path.
func FromYAML(path string) (*hssmodel.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("topology: reading %s: %w", path, err)
	}

	var fixture yamlFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("topology: parsing %s: %w", path, err)
	}

	return Build(fixture.Architecture, fixture.Budgets, fixture.Tasks)
}
