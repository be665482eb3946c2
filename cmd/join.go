package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"irship/link"
)

var flagPeer string

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Connect to a hosting board and play",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagPeer != "" {
			cfg.Link.Peer = flagPeer
		}
		return runJoin(cmd.Context())
	},
}

// runJoin dials cfg.Link.Peer and plays over the connection.
func runJoin(ctx context.Context) error {
	if cfg.Link.Peer == "" {
		return errors.New("no peer given: use --peer ws://host:9191/link")
	}
	log, closer, err := openLog()
	if err != nil {
		return err
	}
	defer closer.Close()

	conn, err := link.Dial(ctx, cfg.Link.Peer, link.WithEcho(cfg.Link.Echo), link.WithLogger(log))
	if err != nil {
		return err
	}
	defer conn.Close()
	log.WithField("peer", cfg.Link.Peer).Info("connected")
	return play(ctx, conn, conn.Done(), log)
}

func init() {
	joinCmd.Flags().StringVar(&flagPeer, "peer", "", "Link URL of the hosting board")
}
