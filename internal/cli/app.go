package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/crmdesk/crm-system/internal/infrastructure/config"
	"github.com/crmdesk/crm-system/internal/remote"
	"github.com/crmdesk/crm-system/internal/session"
	"github.com/crmdesk/crm-system/internal/workspace"
)

// App is what every command runs against.
type App struct {
	Session   *session.Session
	Workspace *workspace.Workspace
	Out       io.Writer
	Err       io.Writer
	Log       zerolog.Logger
}

// Bootstrap builds the App before a command runs.
type Bootstrap func(ctx context.Context) (*App, error)

// NewBootstrap wires the file-backed session and the remote workspace.
func NewBootstrap(cfg *config.Config, log zerolog.Logger) Bootstrap {
	return func(ctx context.Context) (*App, error) {
		api := remote.New(cfg.APIURL, remote.WithTimeout(cfg.Timeout))
		sess, err := session.New(session.NewFileStore(cfg.SessionFile), api, log)
		if err != nil {
			return nil, err
		}
		return &App{
			Session:   sess,
			Workspace: workspace.New(sess, workspace.RemoteDialer(api), log),
			Out:       os.Stdout,
			Err:       os.Stderr,
			Log:       log,
		}, nil
	}
}
