package cli

import (
	gocontext "context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/scheduler"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled sweep",
		Long: `Serve the JSON API for the web app and run the session expiry sweep on
the configured schedule until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := wire.Config()
			logger := wire.Logger()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.Server.Addr
			}

			noSweep, _ := cmd.Flags().GetBool("no-sweep")
			if !noSweep {
				sched := scheduler.New(logger)
				sweep := wire.SweepService()
				job := scheduler.SweepJob(ctx, func(ctx gocontext.Context) error {
					_, err := sweep.RunSweep(ctx)
					return err
				}, logger)
				if err := sched.Add(cfg.Sweep.Schedule, job); err != nil {
					return err
				}
				sched.Start()
				defer func() {
					stopCtx, cancel := gocontext.WithTimeout(gocontext.Background(), 30*time.Second)
					defer cancel()
					if err := sched.Stop(stopCtx); err != nil {
						logger.Printf("scheduler stop: %v", err)
					}
				}()
				fmt.Printf("✓ Sweep scheduled (%s)\n", cfg.Sweep.Schedule)
			}

			fmt.Printf("✓ Listening on %s\n", addr)
			return wire.HTTPServer().Run(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from server.addr)")
	cmd.Flags().Bool("no-sweep", false, "Do not run the scheduled sweep")
	return cmd
}
