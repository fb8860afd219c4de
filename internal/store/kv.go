package store

// Keys used by the Lumo services in the key-value store.
const (
	KeyAuthToken        = "lumo_auth_token"
	KeyUser             = "lumo_user"
	KeyChats            = "lumo_chats"
	KeySessionTimestamp = "lumo_session_timestamp"
	KeyLastActivity     = "lumo_last_activity"
)

// KeyValueStore is the persistent string map the application keeps its state in.
// Implementations never return errors: a failed read reports a missing key and a
// failed write is dropped.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Clear()
}
