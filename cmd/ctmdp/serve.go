package main

import (
	"context"

	"github.com/aretw0/ctmdp/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves stored models and the model algebra over HTTP. Models live in a directory, in Redis, or in memory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		dir, _ := cmd.Flags().GetString("store")
		redisURL, _ := cmd.Flags().GetString("redis-url")
		memory, _ := cmd.Flags().GetBool("memory")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Addr:     ":" + port,
			StoreDir: dir,
			RedisURL: redisURL,
			Memory:   memory,
			Debug:    debugFlag(cmd),
			Out:      cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "", "Model directory (default .ctmdp/models)")
	serveCmd.Flags().String("redis-url", "", "Store models in Redis, e.g. redis://localhost:6379/0")
	serveCmd.Flags().Bool("memory", false, "Keep models in memory only")
}
