package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFTPInbox_AddrAppendsDefaultPort(t *testing.T) {
	f := NewFTPInbox(FTPOptions{Addr: "ftp.example.com"}, nil)
	assert.Equal(t, "ftp.example.com:21", f.addr())
}

func TestFTPInbox_AddrKeepsExplicitPort(t *testing.T) {
	f := NewFTPInbox(FTPOptions{Addr: "ftp.example.com:2121"}, nil)
	assert.Equal(t, "ftp.example.com:2121", f.addr())
}

func TestNewFTPInbox_Defaults(t *testing.T) {
	f := NewFTPInbox(FTPOptions{Addr: "inbox.example.com"}, nil)
	assert.Equal(t, 30*time.Second, f.opts.Timeout)
	assert.Equal(t, "anonymous", f.opts.User)
	assert.Equal(t, "anonymous@", f.opts.Password)
	assert.NotNil(t, f.log)
}

func TestNewFTPInbox_KeepsCredentials(t *testing.T) {
	f := NewFTPInbox(FTPOptions{Addr: "inbox.example.com", User: "svc", Password: "secret"}, nil)
	assert.Equal(t, "svc", f.opts.User)
	assert.Equal(t, "secret", f.opts.Password)
}

func TestDocumentExtensions(t *testing.T) {
	assert.True(t, documentExtensions[".pdf"])
	assert.True(t, documentExtensions[".txt"])
	assert.False(t, documentExtensions[".zip"])
}
