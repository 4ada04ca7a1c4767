package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kisansaarthi/services/session"

	"github.com/spf13/cobra"
)

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogout(contextOf(cmd))
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWhoami(contextOf(cmd))
		},
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (a *app) runLogout(ctx context.Context) error {
	sessions, release, err := a.materializer()
	if err != nil {
		return err
	}
	defer release()

	if err := sessions.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) runWhoami(ctx context.Context) error {
	sessions, release, err := a.materializer()
	if err != nil {
		return err
	}
	defer release()

	sess, err := sessions.Current(ctx)
	if err != nil {
		return err
	}
	if sess.Empty() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if sess.DisplayName != "" {
		fmt.Fprintf(a.out, "Name:    %s\n", sess.DisplayName)
	}
	if sess.Token == "" {
		fmt.Fprintln(a.out, "Token:   none")
		return nil
	}

	info, err := session.Describe(sess.Token)
	if errors.Is(err, session.ErrOpaqueToken) {
		fmt.Fprintln(a.out, "Token:   present")
		return nil
	}
	if err != nil {
		return err
	}
	if info.Phone != "" {
		fmt.Fprintf(a.out, "Phone:   %s\n", info.Phone)
	}
	if !info.ExpiresAt.IsZero() {
		state := ""
		if info.Expired(time.Now()) {
			state = " (expired)"
		}
		fmt.Fprintf(a.out, "Expires: %s%s\n", info.ExpiresAt.Format(time.RFC1123), state)
	}
	return nil
}
