package filesystem

import (
	"fmt"
)

// CreateFileSystem creates a FileSystem for the volume at pathStr.
// Returns (filesystem, closer, error).
// - filesystem: rooted at the local directory or remote path in pathStr
// - closer: A function to call when done (closes SFTP connections); never nil
func CreateFileSystem(pathStr string) (FileSystem, func(), error) {
	parsed, err := ParsePath(pathStr)
	if err != nil {
		return nil, nil, err
	}

	if !parsed.IsRemote {
		// Local filesystem
		return NewRealFileSystem(parsed.LocalPath), func() {}, nil
	}

	// SFTP filesystem
	conn, err := Connect(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			parsed.User, parsed.Host, parsed.Port, err)
	}

	fs := NewSFTPFileSystem(conn, parsed.Path)
	closer := func() {
		_ = fs.Close()
	}

	return fs, closer, nil
}
