package session

// Result is the tagged outcome of a session operation. Login, Register and
// RefreshToken never return Go errors to their callers; every failure is
// converted into a Result carrying a user-presentable message.
type Result struct {
	Success bool
	Error   string
}

func ok() Result {
	return Result{Success: true}
}

func failure(message string) Result {
	return Result{Error: message}
}
