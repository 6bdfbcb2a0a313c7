package view

// DirectoryEntry is the denormalized credential tuple stored in the directory
// document under the user's email key: [displayName, email, role, city].
type DirectoryEntry [4]string

func NewDirectoryEntry(displayName, email, role, city string) DirectoryEntry {
	return DirectoryEntry{displayName, email, role, city}
}
