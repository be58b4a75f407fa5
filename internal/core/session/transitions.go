package session

// ToggleCompleted returns the completed list after toggling task, ordered
// by the task list.
func ToggleCompleted(tasks, completed []string, task string) []string {
	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		done[c] = true
	}
	done[task] = !done[task]

	result := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if done[t] {
			result = append(result, t)
			done[t] = false
		}
	}
	return result
}

// AllCompleted reports whether every task is completed. An empty task list
// is never complete.
func AllCompleted(tasks, completed []string) bool {
	return len(tasks) > 0 && CountCompleted(tasks, completed) == len(distinct(tasks))
}

func distinct(tasks []string) map[string]bool {
	u := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		u[t] = true
	}
	return u
}
