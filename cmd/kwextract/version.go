package main

import (
	"context"
	"fmt"

	"github.com/a-h/kwextract"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(kwextract.Version)
	return nil
}
