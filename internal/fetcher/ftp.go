// Package fetcher pulls pending policy documents from a remote FTP inbox
// into a local directory ahead of batch extraction.
package fetcher

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPOptions configures the inbox fetcher.
type FTPOptions struct {
	Addr     string // host or host:port; port 21 assumed when absent
	User     string
	Password string
	Dir      string // remote inbox directory
	Timeout  time.Duration
}

// FTPInbox downloads documents from a remote FTP directory.
type FTPInbox struct {
	opts FTPOptions
	log  *zap.Logger
}

// NewFTPInbox creates an FTPInbox with the given options.
func NewFTPInbox(opts FTPOptions, log *zap.Logger) *FTPInbox {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.User == "" {
		opts.User = "anonymous"
		opts.Password = "anonymous@"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FTPInbox{opts: opts, log: log}
}

func (f *FTPInbox) addr() string {
	host := f.opts.Addr
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "21")
	}
	return host
}

func (f *FTPInbox) connect(ctx context.Context) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(f.addr(), ftp.DialWithTimeout(f.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: ftp dial")
	}
	if err := conn.Login(f.opts.User, f.opts.Password); err != nil {
		conn.Quit() //nolint:errcheck
		return nil, eris.Wrap(err, "fetcher: ftp login")
	}
	return conn, nil
}

// documentExtensions are the remote file types worth downloading.
var documentExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

// FetchAll downloads every document in the remote inbox directory into
// destDir and returns the local paths of the downloaded files.
func (f *FTPInbox) FetchAll(ctx context.Context, destDir string) ([]string, error) {
	conn, err := f.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Quit() //nolint:errcheck

	entries, err := conn.List(f.opts.Dir)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: ftp list inbox")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "fetcher: create destination dir")
	}

	var paths []string
	for _, entry := range entries {
		if ctx.Err() != nil {
			return paths, eris.Wrap(ctx.Err(), "fetcher: context cancelled")
		}
		if entry.Type != ftp.EntryTypeFile {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name))
		if !documentExtensions[ext] {
			f.log.Debug("fetcher: skipping non-document entry", zap.String("name", entry.Name))
			continue
		}

		localPath := filepath.Join(destDir, entry.Name)
		n, err := f.downloadOne(conn, entry.Name, localPath)
		if err != nil {
			return paths, err
		}
		f.log.Info("fetcher: downloaded document",
			zap.String("name", entry.Name), zap.Int64("bytes", n))
		paths = append(paths, localPath)
	}

	return paths, nil
}

func (f *FTPInbox) downloadOne(conn *ftp.ServerConn, name, localPath string) (int64, error) {
	remotePath := name
	if f.opts.Dir != "" {
		remotePath = strings.TrimSuffix(f.opts.Dir, "/") + "/" + name
	}

	resp, err := conn.Retr(remotePath)
	if err != nil {
		return 0, eris.Wrapf(err, "fetcher: ftp retrieve %s", remotePath)
	}
	defer resp.Close() //nolint:errcheck

	file, err := os.Create(localPath)
	if err != nil {
		return 0, eris.Wrap(err, "fetcher: create local file")
	}
	defer file.Close()

	n, err := io.Copy(file, resp)
	if err != nil {
		return n, eris.Wrapf(err, "fetcher: write %s", localPath)
	}
	return n, nil
}
