package ports

// Notifier shows a transient message to the user.
// Implementations swallow and log failures of optional effects such as sound;
// a returned error only means the message itself could not be shown.
type Notifier interface {
	Notify(message string) error
}
