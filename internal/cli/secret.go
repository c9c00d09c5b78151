package cli

import (
	"fmt"

	"github.com/terraincognita07/cyclecart/internal/security"
)

type SecretCmd struct {
	Length int `help:"Secret length." default:"48"`
}

func (cmd *SecretCmd) Run(ctx *Context) error {
	secret, err := security.GenerateSecret(cmd.Length)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, secret)
	return err
}
