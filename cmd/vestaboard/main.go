// Package main provides a small CLI around the vestaboard SDK: send text or grids,
// list subscriptions, and preview formatted lines locally.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/1set/vestaboard"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "vestaboard: %v\n", err)
		os.Exit(1)
	}
}

type env func(string) (string, bool)

func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookupEnv env) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errors.New("missing command")
	}
	switch args[0] {
	case "text":
		return runText(ctx, args[1:], stdout, stderr, lookupEnv)
	case "grid":
		return runGrid(ctx, args[1:], stdout, stderr, lookupEnv)
	case "subscriptions":
		return runSubscriptions(ctx, args[1:], stdout, stderr, lookupEnv)
	case "preview":
		return runPreview(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// connect resolves settings and builds a client. closeLog releases the log file.
func connect(s *settings, stderr io.Writer, lookupEnv env, extra ...vestaboard.ClientOption) (*vestaboard.Client, func() error, error) {
	if err := s.resolve(lookupEnv); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(s.apiKey) == "" || strings.TrimSpace(s.apiSecret) == "" {
		return nil, nil, fmt.Errorf("missing API key pair (use --api-key/--api-secret, %s/%s, or a config file)", envAPIKey, envAPISecret)
	}
	logger, closeLog, err := newLogger(stderr, s.logLevel, s.logFile)
	if err != nil {
		return nil, nil, err
	}
	opts := []vestaboard.ClientOption{vestaboard.WithLogger(logger)}
	if s.baseURL != "" {
		opts = append(opts, vestaboard.WithBaseURL(s.baseURL))
	}
	if s.subscription != "" {
		opts = append(opts, vestaboard.WithSubscription(s.subscription))
	}
	opts = append(opts, extra...)
	client, err := vestaboard.NewClient(s.apiKey, s.apiSecret, opts...)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}
	return client, closeLog, nil
}

func runText(ctx context.Context, args []string, stdout, stderr io.Writer, lookupEnv env) error {
	var s settings
	flagSet := pflag.NewFlagSet("text", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	s.addFlags(flagSet)
	messages := flagSet.StringArrayP("message", "m", nil, `message text, repeat to send several in turn; \n starts a new line (default: remaining arguments)`)
	pace := flagSet.Duration("pace", vestaboard.RecommendedInterval, "minimum gap between consecutive messages")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	texts := *messages
	if len(texts) == 0 {
		texts = []string{strings.Join(flagSet.Args(), " ")}
	}
	for i, text := range texts {
		text = strings.ReplaceAll(text, `\n`, "\n")
		if strings.TrimSpace(text) == "" {
			return errors.New("message is required")
		}
		if !vestaboard.IsValidText(text) {
			return vestaboard.ErrInvalidText
		}
		texts[i] = text
	}

	var extra []vestaboard.ClientOption
	if len(texts) > 1 {
		extra = append(extra, vestaboard.WithRateLimiter(newPacer(*pace)))
	}
	client, closeLog, err := connect(&s, stderr, lookupEnv, extra...)
	if err != nil {
		return err
	}
	defer closeLog()
	for _, text := range texts {
		res, err := client.SendText(ctx, text)
		if err != nil {
			return err
		}
		printResult(stdout, "Text", res)
	}
	return nil
}

// newPacer spaces a batch of messages. A zero --pace disables pacing; negative
// values fall back to the platform's recommended interval.
func newPacer(pace time.Duration) vestaboard.RateLimiter {
	if pace == 0 {
		return vestaboard.RateLimiterFunc(nil)
	}
	if pace < 0 {
		pace = vestaboard.RecommendedInterval
	}
	return vestaboard.NewFixedIntervalLimiter(pace)
}

func runGrid(ctx context.Context, args []string, stdout, stderr io.Writer, lookupEnv env) error {
	var s settings
	flagSet := pflag.NewFlagSet("grid", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	s.addFlags(flagSet)
	lines := flagSet.StringArrayP("line", "l", nil, "board line, repeat up to 6 times")
	justify := flagSet.StringP("justify", "j", "center", "line justification: left, right, center")
	file := flagSet.StringP("file", "f", "", "JSON file with a 6x22 array of character codes")
	fill := flagSet.Int("fill", -1, "fill every bit with this character code")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	sources := 0
	for _, set := range []bool{len(*lines) > 0, *file != "", *fill >= 0} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return errors.New("provide exactly one of --line, --file or --fill")
	}

	var characters [][]vestaboard.CharacterCode
	switch {
	case len(*lines) > 0:
		g, err := vestaboard.FormatGrid(*lines, vestaboard.ParseJustification(*justify))
		if err != nil {
			return err
		}
		characters = g.Codes()
	case *file != "":
		var err error
		if characters, err = vestaboard.ReadCharactersFile(*file); err != nil {
			return err
		}
	default:
		characters = vestaboard.Fill(vestaboard.CharacterCode(*fill)).Codes()
	}

	client, closeLog, err := connect(&s, stderr, lookupEnv)
	if err != nil {
		return err
	}
	defer closeLog()
	res, err := client.SendCharacters(ctx, characters)
	if err != nil {
		return err
	}
	printResult(stdout, "Grid", res)
	return nil
}

func runSubscriptions(ctx context.Context, args []string, stdout, stderr io.Writer, lookupEnv env) error {
	var s settings
	flagSet := pflag.NewFlagSet("subscriptions", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	s.addFlags(flagSet)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	client, closeLog, err := connect(&s, stderr, lookupEnv)
	if err != nil {
		return err
	}
	defer closeLog()
	subs, err := client.Subscriptions(ctx)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		boards := make([]string, 0, len(sub.Boards))
		for _, b := range sub.Boards {
			boards = append(boards, b.ID)
		}
		fmt.Fprintf(stdout, "%s\tboards=%s\n", sub.ID, strings.Join(boards, ","))
	}
	return nil
}

func runPreview(args []string, stdout, stderr io.Writer) error {
	flagSet := pflag.NewFlagSet("preview", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	justify := flagSet.StringP("justify", "j", "center", "line justification: left, right, center")
	codes := flagSet.Bool("codes", false, "print character codes instead of text")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	g, err := vestaboard.FormatGrid(flagSet.Args(), vestaboard.ParseJustification(*justify))
	if err != nil {
		return err
	}
	if *codes {
		for _, row := range g {
			fields := make([]string, 0, len(row))
			for _, c := range row {
				fields = append(fields, strconv.Itoa(int(c)))
			}
			fmt.Fprintln(stdout, strings.Join(fields, " "))
		}
		return nil
	}
	border := "+" + strings.Repeat("-", vestaboard.Columns) + "+"
	fmt.Fprintln(stdout, border)
	for _, line := range strings.Split(g.String(), "\n") {
		fmt.Fprintln(stdout, "|"+strings.ToUpper(line)+"|")
	}
	fmt.Fprintln(stdout, border)
	return nil
}

func printResult(w io.Writer, kind string, res *vestaboard.UpdateResult) {
	created := res.Created
	if t, err := res.CreatedAt(); err == nil {
		created = t.Format("2006-01-02 15:04:05 MST")
	}
	fmt.Fprintf(w, "%s sent (id=%s created=%s)\n", kind, res.ID, created)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `vestaboard - Vestaboard Read/Write API CLI

Usage:
  vestaboard text          [flags] [message...]
  vestaboard grid          [flags]
  vestaboard subscriptions [flags]
  vestaboard preview       [-j left|right|center] [--codes] [line...]

Common flags:
  --api-key       API key (or set VESTABOARD_API_KEY)
  --api-secret    API secret (or set VESTABOARD_API_SECRET)
  --subscription  Subscription ID (or set VESTABOARD_SUBSCRIPTION; default: first)
  --config        YAML file with api_key, api_secret, subscription, base_url
  --log-level     debug|info|warn|error (default warn)
  --log-file      Also write JSON logs to this file

Text flags:
  -m, --message   Message; \n starts a new line, {63} is a red bit (repeatable)
  --pace          Gap between repeated messages (default 15s, 0 disables)

Grid flags:
  -l, --line      Board line (repeat up to 6 times)
  -j, --justify   left|right|center (default center)
  -f, --file      JSON file with a 6x22 array of character codes
  --fill          Fill every bit with one character code

Notes:
  - Flags win over environment variables, which win over the config file.
  - The platform drops messages sent faster than about one per 15 seconds.
`)
}
