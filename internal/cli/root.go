// Package cli wires the telemetry bridge, the emitter stack and the
// journal together behind a single command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Wouter17/f1-light-sync/internal/bridge"
	"github.com/Wouter17/f1-light-sync/internal/emit"
	"github.com/Wouter17/f1-light-sync/internal/flags"
	"github.com/Wouter17/f1-light-sync/internal/journal"
)

// Options holds the command line configuration.
type Options struct {
	Port    int
	CanDev  string
	HTTP    string
	Journal string
	Verbose bool
}

// NewRootCommand builds the f1-light-sync command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "f1-light-sync <destination>",
		Short: "Forward F1 25 flag telemetry to light displays",
		Long: `f1-light-sync listens for F1 25 UDP telemetry on localhost, reduces it
to a single flag state and forwards one signal per visible change to a
light display listening at <destination>.

Example:
  f1-light-sync 192.168.1.50:7777
  f1-light-sync 192.168.1.50:7777 --port 20888 --can vcan0 --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 20888, "UDP port the game sends telemetry to")
	cmd.Flags().StringVar(&opts.CanDev, "can", "", "SocketCAN interface to mirror signals onto, e.g. vcan0")
	cmd.Flags().StringVar(&opts.HTTP, "http", "", "address to serve the websocket panel endpoint on, e.g. :8080")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to a SQLite file recording every signal")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	return cmd
}

func run(cmd *cobra.Command, opts *Options, destination string) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// The UDP destination is always on; CAN, panels and the journal hook
	// into the same stack behind flags.Emitter.
	udp, err := emit.DialUDP(destination)
	if err != nil {
		return err
	}
	defer udp.Close()
	emitters := emit.Multi{udp}

	if opts.CanDev != "" {
		canEmitter, err := emit.DialCAN(ctx, opts.CanDev)
		if err != nil {
			return err
		}
		defer canEmitter.Close()
		emitters = append(emitters, canEmitter)
		log.Info("mirroring signals to can bus", "interface", opts.CanDev)
	}

	var hub *emit.PanelHub
	if opts.HTTP != "" {
		hub = emit.NewPanelHub(log)
		emitters = append(emitters, hub)
	}

	if opts.Journal != "" {
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				log.Error("error closing journal", "error", closeErr)
			}
		}()
		emitters = append(emitters, j)
		log.Info("journalling signals", "path", opts.Journal, "run", j.RunID())
	}

	engine := flags.New(emitters, flags.WithLogger(log))
	router := bridge.NewRouter(engine, log)
	b, err := bridge.New(router, fmt.Sprintf("127.0.0.1:%d", opts.Port), log)
	if err != nil {
		return err
	}

	log.Info("forwarding flag signals", "destination", destination)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx)
	})

	if hub != nil {
		srv := &http.Server{Addr: opts.HTTP, Handler: hub.Handler()}
		g.Go(func() error {
			log.Info("serving panel endpoint", "addr", opts.HTTP)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("panel endpoint: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
