package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem for a volume exported over SFTP.
// All operations go through one SFTP client; the sequencer drives it from a single loop.
type SFTPFileSystem struct {
	conn   *SFTPConnection
	client *sftp.Client
	root   string
}

// NewSFTPFileSystem creates a new SFTP filesystem rooted at root on an established connection.
func NewSFTPFileSystem(conn *SFTPConnection, root string) *SFTPFileSystem {
	return &SFTPFileSystem{
		conn:   conn,
		client: conn.Client(),
		root:   root,
	}
}

// Close closes the underlying SFTP session and SSH connection.
func (fs *SFTPFileSystem) Close() error {
	if fs.conn != nil {
		return fs.conn.Close()
	}

	return nil
}

// Create creates a remote file for writing.
func (fs *SFTPFileSystem) Create(name string) (File, error) {
	remote := fs.resolve(name)

	file, err := fs.client.Create(remote)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote file %s: %w", name, err)
	}

	return newSFTPFile(file, remote), nil
}

// Exists reports whether name exists on the remote volume.
func (fs *SFTPFileSystem) Exists(name string) (bool, error) {
	_, err := fs.client.Stat(fs.resolve(name))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("failed to check remote file %s: %w", name, err)
}

// Open opens a remote file for reading.
func (fs *SFTPFileSystem) Open(name string) (File, error) {
	remote := fs.resolve(name)

	file, err := fs.client.Open(remote)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s: %w", name, err)
	}

	return newSFTPFile(file, remote), nil
}

// OpenDir lists a remote directory in the order the server returns it.
func (fs *SFTPFileSystem) OpenDir(name string) (DirCursor, error) {
	remote := fs.resolve(name)

	read := func() ([]DirEntry, error) {
		infos, err := fs.client.ReadDir(remote)
		if err != nil {
			return nil, fmt.Errorf("failed to list remote directory %s: %w", name, err)
		}

		entries := make([]DirEntry, 0, len(infos))
		for _, info := range infos {
			entries = append(entries, DirEntry{Name: info.Name(), IsDir: info.IsDir()})
		}

		return entries, nil
	}

	entries, err := read()
	if err != nil {
		return nil, err
	}

	return newSliceCursor(entries, read), nil
}

// Stat returns file information for a remote file.
func (fs *SFTPFileSystem) Stat(name string) (os.FileInfo, error) {
	info, err := fs.client.Stat(fs.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", name, err)
	}

	return info, nil
}

// WriteFileAtomic uploads data to a sibling temp file and renames it over name.
func (fs *SFTPFileSystem) WriteFileAtomic(name string, data []byte) error {
	remote := fs.resolve(name)
	tmp := remote + ".tmp"

	file, err := fs.client.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create remote temp file for %s: %w", name, err)
	}

	_, err = io.Copy(file, bytes.NewReader(data))
	closeErr := file.Close()

	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = fs.client.Remove(tmp)
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	err = replaceRemote(fs.client, tmp, remote)
	if err != nil {
		return fmt.Errorf("failed to replace remote file %s: %w", name, err)
	}

	return nil
}

// remoteRenamer is the part of *sftp.Client that replaceRemote needs.
type remoteRenamer interface {
	PosixRename(oldname, newname string) error
	Rename(oldname, newname string) error
	Remove(path string) error
}

// replaceRemote moves tmp over remote. posix-rename@openssh.com overwrites in one step;
// plain SFTP rename refuses an existing target, so the old file is moved aside first
// and put back if the second rename fails.
func replaceRemote(client remoteRenamer, tmp, remote string) error {
	if client.PosixRename(tmp, remote) == nil {
		return nil
	}

	backup := remote + ".bak"
	_ = client.Remove(backup)

	// A failed move aside usually means there is no old file yet.
	backedUp := client.Rename(remote, backup) == nil

	err := client.Rename(tmp, remote)
	if err == nil {
		if backedUp {
			_ = client.Remove(backup)
		}

		return nil
	}

	if backedUp {
		restoreErr := client.Rename(backup, remote)
		if restoreErr != nil {
			// Both copies stay on the volume: the old one at backup, the new one at tmp.
			return fmt.Errorf("previous file left at %s: %w", backup, errors.Join(err, restoreErr))
		}
	}

	_ = client.Remove(tmp)

	return err //nolint:wrapcheck // wrapped by WriteFileAtomic
}

// resolve maps a volume-absolute path onto the remote root.
// Uses path package (not filepath) since SFTP always uses forward slashes.
func (fs *SFTPFileSystem) resolve(name string) string {
	return path.Join(fs.root, path.Clean("/"+name))
}
