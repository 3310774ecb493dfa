package entity

// School is one directory entry. Image holds an object-storage key, not the
// image bytes.
type School struct {
	ID      int64
	Name    string
	Address string
	City    string
	State   string
	Contact string
	Image   string
	EmailID string
}
