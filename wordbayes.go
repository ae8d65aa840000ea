package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/routegroup"
	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hickeroar/wordbayes/bayes"
	"github.com/hickeroar/wordbayes/seed"
	"github.com/hickeroar/wordbayes/tokenize"
)

type options struct {
	Port      string `long:"port" env:"PORT" default:"8000" description:"port the server listens on"`
	AuthToken string `long:"auth-token" env:"AUTH_TOKEN" description:"bearer token required by classifier endpoints, disabled if empty"`
	Seed      string `long:"seed" env:"SEED" description:"yaml corpus of labeled examples trained at startup"`

	Tokenizer struct {
		Stem      bool   `long:"stem" env:"STEM" description:"apply snowball stemming to tokens"`
		Language  string `long:"language" env:"LANGUAGE" default:"english" description:"stemming language"`
		MinLength int    `long:"min-length" env:"MIN_LENGTH" default:"1" description:"drop tokens shorter than this many characters"`
	} `group:"tokenizer" namespace:"tokenizer" env-namespace:"TOKENIZER"`

	Log struct {
		File       string `long:"file" env:"FILE" description:"rotated log file, stdout only if empty"`
		MaxSize    int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"log file size in megabytes before rotation"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"rotated log files to keep"`
	} `group:"log" namespace:"log" env-namespace:"LOG"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "local"

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var (
	makeSignalChannel = func() chan os.Signal { return make(chan os.Signal, 1) }
	notifySignals     = func(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
	newServer         = func(addr string, handler http.Handler) httpServer {
		return &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       30 * time.Second,
		}
	}
	logFatal = func(v ...interface{}) { log.Fatal(v...) }
	runMain  = func() error {
		opts, err := parseOptions(os.Args[1:])
		if err != nil {
			if flags.WroteHelp(err) {
				return nil
			}
			return err
		}

		logOut, closeLog := makeLogWriter(opts)
		defer closeLog()
		setupLog(opts.Dbg, logOut, opts.AuthToken)
		log.Printf("[DEBUG] options: %+v", opts)

		controller, err := makeClassifierAPI(opts)
		if err != nil {
			return err
		}

		router := routegroup.New(http.NewServeMux())
		controller.RegisterRoutes(router, opts.AuthToken)
		controller.ready.Store(true)

		server := newServer(":"+opts.Port, router)
		log.Printf("[INFO] wordbayes %s is listening on port %s", revision, opts.Port)

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logFatal(err)
			}
		}()

		sigCh := makeSignalChannel()
		notifySignals(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Printf("[WARN] interrupt signal, shutting down")
		controller.ready.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(ctx)
	}
)

func parseOptions(args []string) (options, error) {
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.ParseArgs(args); err != nil {
		return opts, err
	}
	if err := opts.validate(); err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

func (o options) validate() error {
	errs := new(multierror.Error)
	if port, err := strconv.Atoi(o.Port); err != nil || port < 1 || port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("port %q is not a valid tcp port", o.Port))
	}
	if o.Tokenizer.MinLength < 0 {
		errs = multierror.Append(errs, fmt.Errorf("tokenizer min length %d is negative", o.Tokenizer.MinLength))
	}
	if o.Log.File != "" && o.Log.MaxSize <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("log max size %d must be positive", o.Log.MaxSize))
	}
	if o.Log.MaxBackups < 0 {
		errs = multierror.Append(errs, fmt.Errorf("log max backups %d is negative", o.Log.MaxBackups))
	}
	return errs.ErrorOrNil()
}

// makeClassifierAPI builds the tokenizer and classifier, training the seed corpus if one is set.
func makeClassifierAPI(opts options) (*ClassifierAPI, error) {
	tok, err := tokenize.New(tokenize.Options{
		Stem:      opts.Tokenizer.Stem,
		Language:  opts.Tokenizer.Language,
		MinLength: opts.Tokenizer.MinLength,
	})
	if err != nil {
		return nil, fmt.Errorf("can't make tokenizer: %w", err)
	}

	classifier := bayes.NewClassifier(nil)
	if opts.Seed != "" {
		corpus, err := seed.LoadFile(opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("can't load seed corpus: %w", err)
		}
		trained, err := corpus.Apply(classifier, tok)
		if err != nil {
			return nil, fmt.Errorf("can't train seed corpus: %w", err)
		}
		log.Printf("[INFO] trained %d seed examples from %s, categories: %v", trained, opts.Seed, classifier.Store().Names())
	}

	return NewClassifierAPI(classifier, tok), nil
}

func makeLogWriter(opts options) (io.Writer, func()) {
	if opts.Log.File == "" {
		return os.Stdout, func() {}
	}

	rotated := &lumberjack.Logger{
		Filename:   opts.Log.File,
		MaxSize:    opts.Log.MaxSize, // in MB
		MaxBackups: opts.Log.MaxBackups,
		Compress:   true,
		LocalTime:  true,
	}
	return io.MultiWriter(os.Stdout, rotated), func() {
		if err := rotated.Close(); err != nil {
			log.Printf("[WARN] can't close log file %s, %v", opts.Log.File, err)
		}
	}
}

func setupLog(dbg bool, out io.Writer, secrets ...string) {
	logOpts := []lgr.Option{lgr.Out(out), lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Out(out), lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	masked := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			masked = append(masked, s)
		}
	}
	if len(masked) > 0 {
		logOpts = append(logOpts, lgr.Secret(masked...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

func main() {
	if err := runMain(); err != nil {
		logFatal(err)
	}
}
