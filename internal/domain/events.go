package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventVaultScanned    EventType = "VaultScanned"
	EventNoteOpened      EventType = "NoteOpened"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a query is submitted to qmd
type SearchStartedEvent struct {
	Query      string
	Mode       Mode
	Generation uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a qmd invocation returns results
type SearchCompletedEvent struct {
	Query      string
	Generation uint64
	Results    []SearchResult
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a qmd invocation fails or its output
// cannot be parsed
type SearchFailedEvent struct {
	Query      string
	Generation uint64
	Message    string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// VaultScannedEvent is emitted after the vault has been walked
type VaultScannedEvent struct {
	Root       string
	NotesFound int
}

func (e VaultScannedEvent) Type() EventType { return EventVaultScanned }

// NoteOpenedEvent is emitted when a result is resolved and opened.
// BestEffort marks an open that fell back to the raw cleaned path.
type NoteOpenedEvent struct {
	Path       string
	BestEffort bool
}

func (e NoteOpenedEvent) Type() EventType { return EventNoteOpened }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
