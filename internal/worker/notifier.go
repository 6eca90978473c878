package worker

import "log"

// Notifier abstracts the delivery channel (email/SMS later; console now).
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier { return &ConsoleNotifier{} }

func (n *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s", subject, message)
	return nil
}
