package ports

// Store is string key/value storage that survives process restarts.
// Calls are synchronous and each key is written atomically.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes the given keys. Missing keys are not an error.
	Remove(keys ...string) error
}

// BatchSetter is implemented by stores that can write several keys in one
// atomic step. The engine uses it for the timer triple when available.
type BatchSetter interface {
	SetMany(pairs [][2]string) error
}

// Updater is implemented by stores that can read and replace one key as a
// single step, even against other processes sharing the store. fn receives
// the current value; an error from fn aborts the update.
type Updater interface {
	Update(key string, fn func(old string, ok bool) (string, error)) error
}
