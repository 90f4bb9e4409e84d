package filesystem

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// Exported constants.
const (
	DefaultSSHPort = 22
)

// Exported variables.
var (
	ErrEmptyVolumePath = errors.New("volume path is empty")
)

// ParsedPath describes where a volume lives: a local mount point or an SFTP location.
type ParsedPath struct {
	IsRemote bool

	// For local volumes
	LocalPath string

	// For SFTP volumes
	Host string
	Port int
	User string
	Path string // Remote root
}

// ParsePath parses a volume location, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/volume
// Port is optional (defaults to 22)
// Examples:
//   - sftp://pi@frame.local/frames
//   - sftp://pi@frame.local:2222//mnt/sd
//   - /media/sdcard (local mount point)
func ParsePath(location string) (*ParsedPath, error) {
	if strings.TrimSpace(location) == "" {
		return nil, ErrEmptyVolumePath
	}

	if strings.HasPrefix(location, "sftp://") {
		return parseSFTPURL(location)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: filepath.Clean(location),
	}, nil
}

// String renders the location back in the form ParsePath accepts.
func (p *ParsedPath) String() string {
	if !p.IsRemote {
		return p.LocalPath
	}

	// Absolute remote roots come out as "//path", matching the parse convention.
	remote := "/" + p.Path
	if p.Path == "." {
		remote = ""
	}

	return fmt.Sprintf("sftp://%s@%s:%d%s", p.User, p.Host, p.Port, remote)
}

// parseSFTPURL parses an SFTP URL into its components.
//
//nolint:cyclop // Complexity from comprehensive SFTP URL validation (scheme, user, host, port, path)
func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.Scheme != "sftp" {
		return nil, fmt.Errorf("expected sftp:// scheme, got %s://", u.Scheme) //nolint:err113 // URL validation with actual scheme
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, errors.New("SFTP URL must include username (sftp://user@host/path)")
	}
	user := u.User.Username()

	host := u.Hostname()
	if host == "" {
		return nil, errors.New("SFTP URL must include host")
	}

	port := DefaultSSHPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
		if p <= 0 || p > 65535 {
			return nil, fmt.Errorf("port out of range: %d", p) //nolint:err113 // validation with actual value
		}
		port = p
	}

	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := u.Path
	//nolint:gocritic // if-else chain is clearer than switch for mixed conditions (OR, prefix check, fallthrough)
	if remotePath == "" || remotePath == "/" {
		remotePath = "."
	} else if strings.HasPrefix(remotePath, "//") {
		remotePath = remotePath[1:]
	} else {
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     user,
		Path:     remotePath,
	}, nil
}
