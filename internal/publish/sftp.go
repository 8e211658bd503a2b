// Package publish uploads rendered reports to a remote host over SFTP.
package publish

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

const DefaultPort uint16 = 22

// Remote location of a published report.
type Target struct {
	User string
	Host string
	Port uint16
	Path string
}

func (t Target) FullHost() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

func (t Target) String() string {
	return fmt.Sprintf("%s@%s%s", t.User, t.FullHost(), t.Path)
}

// Parses a target in the form user@host[:port]/path. The path is kept
// absolute.
func ParseTarget(s string) (Target, error) {
	at := strings.Index(s, "@")
	if at <= 0 {
		return Target{}, fmt.Errorf("invalid publish target '%s': missing user", s)
	}
	user, rest := s[:at], s[at+1:]

	slash := strings.Index(rest, "/")
	if slash < 0 {
		return Target{}, fmt.Errorf("invalid publish target '%s': missing path", s)
	}
	hostPort, remotePath := rest[:slash], path.Clean(rest[slash:])
	if remotePath == "/" {
		return Target{}, fmt.Errorf("invalid publish target '%s': missing file name", s)
	}

	host, port := hostPort, DefaultPort
	if colon := strings.LastIndex(hostPort, ":"); colon >= 0 {
		host = hostPort[:colon]
		parsed, err := strconv.ParseUint(hostPort[colon+1:], 10, 16)
		if err != nil || parsed == 0 {
			return Target{}, fmt.Errorf("invalid publish target '%s': bad port '%s'", s, hostPort[colon+1:])
		}
		port = uint16(parsed)
	}

	if host == "" {
		return Target{}, fmt.Errorf("invalid publish target '%s': missing host", s)
	}

	return Target{User: user, Host: host, Port: port, Path: remotePath}, nil
}

func openSshClient(target Target, keyPath string, timeout time.Duration) (*ssh.Client, error) {
	privateKey, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key file '%s': %w", keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key: %w", err)
	}

	clientConfig := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	client, err := ssh.Dial("tcp", target.FullHost(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SSH server '%s': %w", target.FullHost(), err)
	}

	return client, nil
}

// Writes content to the target path, creating parent directories as needed.
func Upload(target Target, keyPath string, timeout time.Duration, content []byte) error {
	client, err := openSshClient(target, keyPath, timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		return fmt.Errorf("failed to create SFTP client: %w", err)
	}
	defer sftpClient.Close()

	if err := sftpClient.MkdirAll(path.Dir(target.Path)); err != nil {
		return fmt.Errorf("failed to create remote directory '%s': %w", path.Dir(target.Path), err)
	}

	file, err := sftpClient.Create(target.Path)
	if err != nil {
		return fmt.Errorf("failed to create remote file '%s': %w", target.Path, err)
	}
	defer file.Close()

	if _, err := file.Write(content); err != nil {
		return fmt.Errorf("failed to write remote file '%s': %w", target.Path, err)
	}

	logrus.WithField("target", target.String()).Infof("Published report (%d bytes)", len(content))

	return nil
}
