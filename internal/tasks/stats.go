package tasks

import "todomaster/internal/service"

// CompletedCount returns the number of completed tasks.
func CompletedCount(tasks []service.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Summarize returns the total, completed and pending counts.
func Summarize(tasks []service.Task) service.Stats {
	done := CompletedCount(tasks)
	return service.Stats{
		Total:     len(tasks),
		Completed: done,
		Pending:   len(tasks) - done,
	}
}
