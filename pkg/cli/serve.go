package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gethavoc/havoc/pkg/admin"
	"github.com/gethavoc/havoc/pkg/chaos"
	"github.com/gethavoc/havoc/pkg/config"
	"github.com/gethavoc/havoc/pkg/httputil"
	"github.com/gethavoc/havoc/pkg/metrics"
)

var (
	servePort      int
	serveAdminPort int
	serveConfig    string
	serveProfile   string
	serveIntensity string

	serveProbability float64
	serveDelayMin    string
	serveDelayMax    string
	serveErrorCodes  []int
	serveEnabled     []string
	serveDisabled    []string
	serveQuiet       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a demo upstream wrapped in the chaos middleware",
	Long: `Starts a small JSON upstream on --port with the chaos middleware in
front of it, plus the admin API (stats, config, profiles, metrics) on
--admin-port. Useful for pointing clients at realistic failure modes
without touching their real backend.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}

		logger := newLogger()
		recorder := metrics.NewRecorder()

		engine, err := chaos.New(opts,
			chaos.WithLogger(logger),
			chaos.WithObserver(recorder),
		)
		if err != nil {
			return err
		}

		upstream := demoUpstream()
		server := &http.Server{
			Addr:        fmt.Sprintf(":%d", servePort),
			Handler:     chaos.NewMiddleware(upstream, engine),
			ReadTimeout: 30 * time.Second,
		}

		adminAPI := admin.New(engine, serveAdminPort,
			admin.WithLogger(logger),
			admin.WithMetrics(recorder),
		)

		errCh := make(chan error, 2)
		go func() { errCh <- server.ListenAndServe() }()
		go func() { errCh <- adminAPI.Start() }()

		logger.Info("havoc serving",
			"addr", server.Addr,
			"adminPort", serveAdminPort,
			"probability", engine.Config().Probability,
		)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = adminAPI.Shutdown(ctx)
		return server.Shutdown(ctx)
	},
}

// buildOptions layers the option sources: profile, then config file,
// then explicit flags.
func buildOptions() (chaos.Options, error) {
	var opts chaos.Options

	if serveProfile != "" {
		p, ok := chaos.GetProfile(serveProfile)
		if !ok {
			return chaos.Options{}, fmt.Errorf("unknown profile %q (see 'havoc profiles')", serveProfile)
		}
		opts = p.Options
	}

	if serveConfig != "" {
		loaded, err := config.LoadOptions(serveConfig)
		if err != nil {
			return chaos.Options{}, err
		}
		opts = loaded
	}

	if serveIntensity != "" {
		in, err := chaos.ParseIntensity(serveIntensity)
		if err != nil {
			return chaos.Options{}, err
		}
		opts.Intensity = in
	}
	if serveProbability >= 0 {
		p := serveProbability
		opts.Probability = &p
	}
	if serveDelayMin != "" {
		opts.DelayMin = serveDelayMin
	}
	if serveDelayMax != "" {
		opts.DelayMax = serveDelayMax
	}
	if len(serveErrorCodes) > 0 {
		opts.ErrorCodes = serveErrorCodes
	}
	if len(serveEnabled) > 0 {
		opts.EnabledRoutes = serveEnabled
	}
	if len(serveDisabled) > 0 {
		opts.DisabledRoutes = serveDisabled
	}
	opts.LoggingEnabled = !serveQuiet

	return opts, nil
}

// demoUpstream returns a small JSON API for clients to exercise.
func demoUpstream() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteOK(w, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteOK(w, []map[string]any{
			{"id": 1, "name": "ada", "email": "ada@example.com"},
			{"id": 2, "name": "grace", "email": "grace@example.com"},
		})
	})
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteOK(w, []map[string]any{
			{"id": "ord-1001", "total": 42.50, "status": "shipped"},
			{"id": "ord-1002", "total": 12.00, "status": "pending"},
		})
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port for the chaos-wrapped upstream")
	serveCmd.Flags().IntVar(&serveAdminPort, "admin-port", 9290, "Port for the admin API")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to a JSON/YAML options file")
	serveCmd.Flags().StringVar(&serveProfile, "profile", "", "Built-in profile to start from")
	serveCmd.Flags().StringVar(&serveIntensity, "intensity", "", "Intensity preset (mild, wild, extreme)")
	serveCmd.Flags().Float64Var(&serveProbability, "probability", -1, "Chaos probability (0.0-1.0)")
	serveCmd.Flags().StringVar(&serveDelayMin, "delay-min", "", "Minimum injected delay (e.g. 100ms)")
	serveCmd.Flags().StringVar(&serveDelayMax, "delay-max", "", "Maximum injected delay (e.g. 3s)")
	serveCmd.Flags().IntSliceVar(&serveErrorCodes, "error-codes", nil, "Status codes for error injection")
	serveCmd.Flags().StringSliceVar(&serveEnabled, "enable-route", nil, "Path prefix eligible for chaos (repeatable)")
	serveCmd.Flags().StringSliceVar(&serveDisabled, "disable-route", nil, "Path prefix never touched by chaos (repeatable)")
	serveCmd.Flags().BoolVar(&serveQuiet, "quiet", false, "Disable per-decision logging")
	rootCmd.AddCommand(serveCmd)
}
