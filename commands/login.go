package commands

import (
	"context"
	"fmt"

	"kisansaarthi/models"
	"kisansaarthi/services/wizard"

	"github.com/spf13/cobra"
)

func loginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with mobile number and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogin(contextOf(cmd))
		},
	}
}

func (a *app) runLogin(ctx context.Context) error {
	client, err := a.apiClient()
	if err != nil {
		return err
	}
	sessions, release, err := a.materializer()
	if err != nil {
		return err
	}
	defer release()

	flow := wizard.NewLoginFlow(client, sessions, a.logger)
	defer flow.Close()
	p := a.prompter()

	var phone string
	get := func(field string) (string, bool) {
		if field == models.FieldPhone {
			return phone, true
		}
		return "", false
	}
	set := func(field, value string) error {
		if field == models.FieldPhone {
			phone = value
		}
		return flow.SetField(field, value)
	}

	for {
		err := fill(p, []input{
			{field: models.FieldPhone},
			{field: models.FieldPassword, secret: true},
		}, flow.Errors(), get, set)
		if err != nil {
			return err
		}

		sess, err := flow.Submit(ctx)
		if err == nil {
			if sess.DisplayName != "" {
				fmt.Fprintf(a.out, "Welcome back, %s!\n", sess.DisplayName)
			} else {
				fmt.Fprintln(a.out, "Logged in.")
			}
			return nil
		}
		if err := report(a.out, err); err != nil {
			return err
		}
	}
}
