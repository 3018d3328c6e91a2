package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"regexp"

	"github.com/km-arc/formguard/framework/app"
	"github.com/km-arc/formguard/framework/container"
	"github.com/km-arc/formguard/framework/validation"
)

//go:embed schemas/*.yaml
var schemas embed.FS

var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,16}$`)

// usernameRule is an application rule registered next to the built-ins.
var usernameRule = validation.Rule{
	Name:    "username",
	Message: "Use 3 to 16 lowercase letters, digits or underscores",
	Check: func(value string, _ []string, _ validation.Values) bool {
		return usernameRe.MatchString(value)
	},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	application, err := app.New() // loads .env automatically
	if err != nil {
		return err
	}

	application.Extend("validation.rules", func(instance any, c *container.Container) any {
		reg := instance.(*validation.Registry)
		if err := reg.Register(usernameRule, validation.WithReplace()); err != nil {
			panic(err)
		}
		return reg
	})

	if err := application.Boot(); err != nil {
		return err
	}
	if err := application.LoadForms(schemas, "schemas/*.yaml"); err != nil {
		return err
	}

	return application.Run(context.Background())
}
