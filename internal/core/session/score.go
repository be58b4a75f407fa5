// Package session contains the pure business logic for task sessions
// ("memories"): completion scoring, expiry, guards and the expiry planner.
package session

import "math"

// CompletionScore returns round(100 * completed / total), or 0 when there
// are no tasks.
func CompletionScore(total, completed int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// CountCompleted counts the distinct completed entries that appear in tasks.
func CountCompleted(tasks, completed []string) int {
	inTasks := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		inTasks[t] = true
	}
	seen := make(map[string]bool, len(completed))
	n := 0
	for _, c := range completed {
		if inTasks[c] && !seen[c] {
			seen[c] = true
			n++
		}
	}
	return n
}

// ScoreFor is CompletionScore over a session's task and completed lists.
func ScoreFor(tasks, completed []string) int {
	return CompletionScore(len(tasks), CountCompleted(tasks, completed))
}
