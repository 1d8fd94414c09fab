package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured events from pipeline steps.
type Observer interface {
	// Printf logs a free-form message.
	Printf(format string, v ...interface{})

	// Debugf logs a message only when verbose output is enabled.
	Debugf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured pipeline event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType classifies pipeline events.
type EventType string

const (
	// EventPhaseStarted indicates a pipeline phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a pipeline phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a pipeline phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventStepSkipped indicates an optional step was skipped, with the
	// reason recorded.
	EventStepSkipped EventType = "step.skipped"
	// EventWarning indicates a recoverable condition that did not fail
	// the step.
	EventWarning EventType = "warning"
)

// ConsoleObserver implements Observer over the standard log package.
type ConsoleObserver struct {
	verbose bool
}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver(verbose bool) *ConsoleObserver {
	return &ConsoleObserver{verbose: verbose}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Debugf implements Observer.
func (o *ConsoleObserver) Debugf(format string, v ...interface{}) {
	if o.verbose {
		log.Printf(format, v...)
	}
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

func formatEvent(event Event) string {
	parts := []string{string(event.Type)}

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "starting"})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreated logs a successful resource creation.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceDeleted logs a successful resource deletion.
func LogResourceDeleted(observer Observer, phase, resourceType, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: resourceID,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogStepSkipped logs a skipped optional step with its reason.
func LogStepSkipped(observer Observer, phase, reason string) {
	observer.Event(Event{Type: EventStepSkipped, Phase: phase, Message: reason})
}

// LogWarning logs a recoverable warning.
func LogWarning(observer Observer, phase, message string) {
	observer.Event(Event{Type: EventWarning, Phase: phase, Message: message})
}
