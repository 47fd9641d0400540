package commands

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/auth"
	"github.com/phytogl/phytogl/internal/config"
)

func tokenAction(cfg *config.Config) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		svc := auth.NewService(cfg.JWTSecret)
		token, err := svc.IssueToken(ctx.String("subject"), ctx.Duration("ttl"))
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, token)
		return nil
	}
}
