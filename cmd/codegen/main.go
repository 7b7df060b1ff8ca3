package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/depcell/depcell/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const maxArityKey = "arity"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Regenerate the N-ary computed combinators",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  maxArityKey,
				Usage: "Highest combinator arity to generate",
				Value: 8,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for combinators started")
	defer func() {
		log.Printf("Codegen for combinators finished in %v", time.Since(start))
	}()

	maxArity := cmd.Uint(maxArityKey)

	contents := templates.CombineGen(int(maxArity))
	return os.WriteFile("reactive/combine.go", []byte(contents), 0644)
}
