package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	server    string
	transport string
	state     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "authctl",
		Short: "Command line client for the tollgate auth service",
		Long: `authctl signs in to a tollgate server and keeps the session in a local
state file, so later commands reuse it. Expired access tokens are refreshed
automatically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("TOLLGATE_SERVER", "http://localhost:8080"), "Server base URL")
	flags.StringVar(&opts.transport, "transport", envOr("TOLLGATE_TRANSPORT", string(httpx.TransportHeader)), "Token transport the server uses (header, cookie)")
	flags.StringVar(&opts.state, "state", envOr("TOLLGATE_STATE", defaultStatePath()), "Session state file")

	rootCmd.AddCommand(
		loginCmd(opts),
		logoutCmd(opts),
		whoamiCmd(opts),
		refreshCmd(opts),
		twoFactorCmd(opts),
		postsCmd(opts),
	)

	return rootCmd
}

// openSession opens the state file and rehydrates the session from it. The
// returned close func must be called before exiting.
func (o *globalOptions) openSession() (*authsdk.Session, func(), error) {
	transport, err := httpx.ParseTransport(o.transport)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(o.state), 0o700); err != nil {
		return nil, nil, fmt.Errorf("creating state directory: %w", err)
	}
	storage, err := authsdk.OpenBoltStorage(o.state)
	if err != nil {
		return nil, nil, err
	}

	client := authsdk.NewSDKClient(o.server)
	client.Transport = transport

	session, err := authsdk.NewSession(client, storage)
	if err != nil {
		_ = storage.Close()
		return nil, nil, err
	}
	return session, func() { _ = storage.Close() }, nil
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "tollgate", "session.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
