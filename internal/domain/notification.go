package domain

// Notification ids shared by every process instance, so a later invocation
// can replace or remove what an earlier one posted.
const (
	NotificationStartup  = 101
	NotificationDetected = 200
	NotificationProgress = 201
	NotificationResult   = 202
)

// Priority levels understood by the notification bridge
const (
	PriorityDefault = "default"
	PriorityHigh    = "high"
)

// NotificationButton is an action button; Action is a shell command run on tap
type NotificationButton struct {
	Label  string
	Action string
}

// Notification is a request to show or replace a notification by ID
type Notification struct {
	ID       int
	Title    string
	Content  string
	Ongoing  bool
	Priority string
	Buttons  []NotificationButton
}

// NotificationSink is the capability to post notifications. Implementations
// never report replies; a button tap starts a new process instead.
type NotificationSink interface {
	Create(n Notification) error
	Update(n Notification) error
	Remove(id int) error
}
