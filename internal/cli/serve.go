package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/opencode-ai/vibeui/internal/logging"
	"github.com/opencode-ai/vibeui/internal/service"
	"github.com/opencode-ai/vibeui/internal/themed"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int

	clientAddr    string
	clientFormat  string
	clientTimeout time.Duration
)

// Version is reported by serve and shown by --version.
var Version = "dev"

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(clientCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "address to bind (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")

	clientCmd.Flags().StringVar(&clientAddr, "addr", "", "daemon address host:port (default from config)")
	clientCmd.Flags().StringVar(&clientFormat, "format", "", "detail level: summary or detailed")
	clientCmd.Flags().DurationVar(&clientTimeout, "timeout", 5*time.Second, "request timeout")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the theme daemon",
	Long: `Run the gRPC daemon exposing ListDesigns, GetByName, GetByIntent,
Help and Ping. The catalog is loaded once at startup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		logger := logging.Component("themed")
		result := a.catalog.Load()
		logger.Info().
			Int("themes", len(result.Accepted)).
			Int("rejected", len(result.Rejected)).
			Msg("catalog ready")

		daemon, err := themed.New(a.cfg, a.service, logger, themed.Options{
			Hostname: serveHost,
			Port:     servePort,
			Version:  Version,
		})
		if err != nil {
			return err
		}
		return daemon.Run(ctx)
	},
}

var clientCmd = &cobra.Command{
	Use:   "client <method> [argument...]",
	Short: "Call a running theme daemon",
	Long: `Call a running theme daemon.

Methods:
  list            ListDesigns
  get <name>      GetByName
  match <intent>  GetByIntent
  help            Help
  ping            Ping`,
	Example: "  vibeui client match dark neon\n  vibeui client ping --addr 127.0.0.1:50151",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := clientAddr
		if addr == "" {
			cfg := GetConfig()
			addr = net.JoinHostPort(cfg.Daemon.Host, strconv.Itoa(cfg.Daemon.Port))
		}

		client, err := themed.Dial(addr)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
		defer cancel()

		return runClient(ctx, cmd, client, args[0], strings.Join(args[1:], " "))
	},
}

func runClient(ctx context.Context, cmd *cobra.Command, client *themed.Client, method, arg string) error {
	var (
		env service.Envelope
		err error
	)

	switch strings.ToLower(method) {
	case "list":
		env, err = client.ListDesigns(ctx, clientFormat)
	case "get":
		if arg == "" {
			return fmt.Errorf("get requires a name")
		}
		env, err = client.GetByName(ctx, arg, clientFormat)
	case "match":
		if arg == "" {
			return fmt.Errorf("match requires an intent")
		}
		env, err = client.GetByIntent(ctx, arg, clientFormat)
	case "help":
		env, err = client.Help(ctx)
	case "ping":
		return runPing(ctx, cmd, client)
	default:
		return &PreflightError{
			Message:  fmt.Sprintf("unknown method %q", method),
			Hint:     "Use one of list, get, match, help or ping",
			NextStep: "vibeui client --help",
		}
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}
	return writeEnvelope(cmd.OutOrStdout(), env)
}

func runPing(ctx context.Context, cmd *cobra.Command, client *themed.Client) error {
	info, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	if IsJSONOutput() {
		return WriteOutput(cmd.OutOrStdout(), info)
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprint(info[k])})
	}
	return writeTable(cmd.OutOrStdout(), nil, rows)
}
