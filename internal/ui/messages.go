package ui

// stateChangedMsg tells the model to re-read the application state
type stateChangedMsg struct{}

// confirmRequestMsg asks the user a question on behalf of a running workflow
type confirmRequestMsg struct {
	prompt string
	reply  chan<- bool
}
