package model

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	// TaskStatusPending is the initial state of a task.
	TaskStatusPending TaskStatus = "Pending"
	// TaskStatusInProgress marks a task being worked on.
	TaskStatusInProgress TaskStatus = "In Progress"
	// TaskStatusCompleted marks a finished task.
	TaskStatusCompleted TaskStatus = "Completed"
)

// TaskPriority ranks tasks.
type TaskPriority string

const (
	// TaskPriorityLow is the lowest priority.
	TaskPriorityLow TaskPriority = "Low"
	// TaskPriorityMedium is the default priority.
	TaskPriorityMedium TaskPriority = "Medium"
	// TaskPriorityHigh is the highest priority.
	TaskPriorityHigh TaskPriority = "High"
)

// HabitFrequency is how often a habit is meant to recur.
type HabitFrequency string

const (
	// HabitDaily recurs every day.
	HabitDaily HabitFrequency = "Daily"
	// HabitWeekly recurs every week.
	HabitWeekly HabitFrequency = "Weekly"
)

// Task is a local-only todo item. Tasks never come from the spreadsheet
// and must survive every sync cycle untouched.
type Task struct {
	ID       string
	Title    string
	Deadline string
	Status   TaskStatus
	Priority TaskPriority
}

// Habit is a local-only recurring habit with a streak counter.
type Habit struct {
	ID        string
	Name      string
	Frequency HabitFrequency
	Streak    int
}
