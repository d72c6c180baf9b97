package playground

import (
	_ "embed"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/signals/pkg/errors"
	"github.com/arthur-debert/signals/pkg/logging"
)

var log = logging.GetLogger("playground")

// Step actions understood by the runner
const (
	// ActionAdd registers a listener with the registry, creating it if
	// this is the first step naming it
	ActionAdd = "add"

	// ActionRemove unregisters a listener
	ActionRemove = "remove"

	// ActionDrop discards the owning reference to a listener and forces
	// a collection, so its registry handle goes dead
	ActionDrop = "drop"

	// ActionInvoke dispatches an event to every live listener
	ActionInvoke = "invoke"
)

// Step is a single scripted operation in a scenario
type Step struct {
	Action   string `toml:"action"`
	Listener string `toml:"listener,omitempty"`
	Event    string `toml:"event,omitempty"`
}

// Scenario is a scripted sequence of steps exercising a registry
type Scenario struct {
	Title string `toml:"title"`
	Steps []Step `toml:"steps"`
}

//go:embed default.toml
var defaultScenario []byte

// Default returns the built-in scenario: two listeners receiving an
// event, one explicit removal, and one listener dropped by its owner to
// demonstrate pruning.
func Default() *Scenario {
	s, err := Parse(defaultScenario)
	if err != nil {
		// The embedded scenario is validated by tests; failing to parse
		// it is a build defect.
		panic(err)
	}
	return s
}

// Load reads and parses a scenario from a TOML file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read scenario %s", path)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", path).Int("steps", len(s.Steps)).Msg("Scenario loaded")
	return s, nil
}

// Parse decodes and validates a TOML scenario document
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid scenario document")
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if len(s.Steps) == 0 {
		return errors.New(errors.ErrConfigParse, "scenario has no steps")
	}

	for i, step := range s.Steps {
		switch step.Action {
		case ActionAdd, ActionRemove, ActionDrop:
			if step.Listener == "" {
				return errors.Newf(errors.ErrConfigParse,
					"step %d: action %q requires a listener", i+1, step.Action)
			}
		case ActionInvoke:
			if step.Event == "" {
				return errors.Newf(errors.ErrConfigParse,
					"step %d: action %q requires an event", i+1, step.Action)
			}
		default:
			return errors.Newf(errors.ErrConfigParse,
				"step %d: unknown action %q", i+1, step.Action)
		}
	}
	return nil
}
