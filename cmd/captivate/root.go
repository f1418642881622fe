package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/captivate-cli/captivate/internal/config"
	"github.com/captivate-cli/captivate/internal/detect"
	"github.com/captivate-cli/captivate/internal/gateway"
	"github.com/captivate-cli/captivate/internal/instance"
	"github.com/captivate-cli/captivate/internal/launcher"
	"github.com/captivate-cli/captivate/internal/logging"
	"github.com/captivate-cli/captivate/internal/netready"
	"github.com/captivate-cli/captivate/internal/platform"
	"github.com/captivate-cli/captivate/internal/ui"
	"github.com/captivate-cli/captivate/internal/wifi"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// reconnectWait gives Wi-Fi time to re-associate after a power cycle
// before detection is retried.
const reconnectWait = 10 * time.Second

var (
	flagVerbose   bool
	flagNoOpen    bool
	flagGateway   bool
	flagNotify    bool
	flagResetWifi bool
	flagTimeout   int
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:     "captivate",
	Short:   "Captive portal auto-detection and opener",
	Long: `captivate checks whether the current network intercepts traffic with a
captive portal (a Wi-Fi login page) and opens the login page in the
default browser when it finds one.

Exit codes: 0 when the check completed (portal or clean network),
2 when the network is not ready, 3 when every probe failed without a
clear signal, 1 on configuration or platform errors.`,
	Version:       "", // filled in init
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command and exits with the detection status code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// exitCode is set by run from the terminal ExecutionStatus.
var exitCode int

func init() {
	rootCmd.Version = Version
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable detailed per-probe output")
	rootCmd.Flags().BoolVar(&flagNoOpen, "no-open", false, "display the portal URL without opening the browser")
	rootCmd.Flags().BoolVar(&flagGateway, "gateway", false, "prioritize the default-gateway direct check")
	rootCmd.Flags().BoolVar(&flagNotify, "notify", false, "send a desktop notification when a portal is found")
	rootCmd.Flags().BoolVar(&flagResetWifi, "reset-wifi", false, "on a not-ready network, power-cycle Wi-Fi and retry once (macOS)")
	rootCmd.Flags().IntVarP(&flagTimeout, "timeout", "t", 10, "per-probe timeout in seconds")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file path (default: user config dir)")
}

func run(cmd *cobra.Command, _ []string) error {
	logging.Setup(flagVerbose)

	if err := platform.Check(); err != nil {
		return err
	}

	opts, endpoints, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	lock, err := instance.Acquire()
	if err != nil {
		return err
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := gateway.ExecRunner{}
	detector := &detect.Detector{
		Options:   opts,
		Endpoints: endpoints,
		Readiness: netready.New(runner),
		// Early-exit only in gateway-first mode, where a decisive portal
		// signal should cancel the slower vendor probes.
		Prober:   detect.NewEngine(opts.Timeout, opts.Gateway),
		Gateway:  gateway.New(opts.Timeout),
		Launcher: launcher.New(opts.NoOpen),
		Notifier: ui.DesktopNotifier{},
	}

	result := runDetection(ctx, detector, opts)

	if result.Status == detect.StatusNetworkNotReady && flagResetWifi {
		retried, ok := retryAfterWifiReset(ctx, detector, opts, runner)
		if ok {
			result = retried
		}
	}

	report(result, opts)
	exitCode = result.Status.ExitCode()
	return nil
}

// buildOptions merges flags over the optional config file. A flag the
// user set explicitly always wins.
func buildOptions(cmd *cobra.Command) (detect.Options, []detect.Endpoint, error) {
	opts := detect.Options{
		Verbose: flagVerbose,
		NoOpen:  flagNoOpen,
		Gateway: flagGateway,
		Notify:  flagNotify,
		Timeout: time.Duration(flagTimeout) * time.Second,
	}
	endpoints := detect.DefaultEndpoints()

	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	if path != "" {
		cfg, err := config.Load(path)
		switch {
		case err == nil:
			if !cmd.Flags().Changed("timeout") && cfg.TimeoutSeconds > 0 {
				opts.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
			}
			if !cmd.Flags().Changed("no-open") {
				opts.NoOpen = opts.NoOpen || cfg.NoOpen
			}
			if !cmd.Flags().Changed("notify") {
				opts.Notify = opts.Notify || cfg.Notify
			}
			if !cmd.Flags().Changed("gateway") {
				opts.Gateway = opts.Gateway || cfg.Gateway
			}
			endpoints = append(endpoints, cfg.ExtraEndpoints()...)
		case flagConfig != "":
			// An explicitly requested config file must load, even when
			// the failure is that it does not exist.
			return opts, nil, err
		case errors.Is(err, os.ErrNotExist):
			// No config file at the default path is the normal case.
		default:
			logging.Component("config").WithError(err).Warn("ignoring unreadable config file")
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, nil, err
	}
	return opts, endpoints, nil
}

// runDetection wraps one detection pass in a spinner when the console is
// not in verbose mode.
func runDetection(ctx context.Context, d *detect.Detector, opts detect.Options) detect.Result {
	var spinner *pterm.SpinnerPrinter
	if !opts.Verbose {
		spinner, _ = pterm.DefaultSpinner.Start("Detecting captive portal...")
	}
	result := d.Run(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}
	return result
}

// retryAfterWifiReset power-cycles the Wi-Fi interface and runs detection
// once more. Returns ok=false when the reset was not possible.
func retryAfterWifiReset(ctx context.Context, d *detect.Detector, opts detect.Options, runner gateway.ExecRunner) (detect.Result, bool) {
	if !wifi.Supported() {
		pterm.Warning.Println("--reset-wifi is only supported on macOS")
		return detect.Result{}, false
	}

	ctl := wifi.New(runner)
	device, err := ctl.Device()
	if err != nil {
		pterm.Warning.Printfln("Wi-Fi reset skipped: %v", err)
		return detect.Result{}, false
	}

	pterm.Info.Printfln("Resetting Wi-Fi on %s and retrying after reconnect...", device)
	if err := ctl.Reset(device); err != nil {
		pterm.Warning.Printfln("Wi-Fi reset failed: %v", err)
		return detect.Result{}, false
	}

	select {
	case <-time.After(reconnectWait):
	case <-ctx.Done():
		return detect.Result{}, false
	}

	return runDetection(ctx, d, opts), true
}

// report prints the definitive status line. Exactly one is always printed.
func report(result detect.Result, opts detect.Options) {
	switch result.Status {
	case detect.StatusCompleted:
		pterm.Success.Println("No captive portal detected, internet reachable")
	case detect.StatusPortalDetected:
		pterm.Success.Printfln("Captive portal detected: %s", result.PortalURL)
		switch {
		case opts.NoOpen:
			pterm.Info.Println("Browser open suppressed (--no-open)")
		case result.LaunchErr != nil:
			pterm.Warning.Printfln("Could not open the browser (%v); open the login page manually", result.LaunchErr)
		default:
			pterm.Info.Println("Opening the login page in your browser...")
		}
	case detect.StatusNetworkNotReady:
		pterm.Error.Println("Network not ready. This may be a first-time Wi-Fi connection")
		pterm.Println("  Wait a few seconds for the network to stabilize and try again")
	case detect.StatusInconclusive:
		pterm.Warning.Println("Inconclusive: every probe failed or timed out without a clear signal")
		pterm.Println(fmt.Sprintf("  Re-run with --verbose or a longer --timeout (current: %s)", opts.Timeout))
	}
}
