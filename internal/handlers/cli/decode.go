package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"
)

// decodeCommand returns the CLI command that decodes a single raw transaction
// and prints the typed result as indented JSON.
//
// Usage example:
//
//	txlens decode --raw 0x02f8...
func decodeCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:        "decode",
		Description: "Decodes a serialized transaction envelope and prints its typed fields.",
		Usage:       "Decodes one raw transaction. The hex payload may carry an optional 0x prefix.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "raw",
				Usage:    "Hex-encoded transaction envelope to decode",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			tx, err := deps.Decoder.Decode(ctx, c.String("raw"))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(tx, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(out))
			return nil
		},
	}
}
