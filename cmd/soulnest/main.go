// Command soulnest calls the soulnest API from the shell.
//
//	soulnest [flags] <command> [args]
//
// Settings come from the file named by -config (or SOULNEST_CONFIG), the
// SOULNEST_* environment and a .env file. Credentials are kept in
// ~/.config/soulnest/credentials.json unless the settings choose another
// backend.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	soulnest "github.com/soulnest/client-go"
	"github.com/soulnest/client-go/internal/config"
	"github.com/soulnest/client-go/internal/telemetry"
)

const usage = `usage: soulnest [flags] <command> [args]

commands:
  public-key                  print the server public key
  hello                       call the test endpoint
  request METHOD PATH [BODY]  send a request; BODY "-" reads stdin
  login USER [PASSWORD]       log in and store the bearer token
  logout                      forget the bearer token
  admin-key KEY               store the admin API key
  clear                       forget all credentials

flags:
`

// Config holds the process streams used by run.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func main() {
	if err := run(context.Background(), os.Args[1:], DefaultConfig()); err != nil {
		fatal("%v", err)
	}
}

func run(ctx context.Context, args []string, cfg Config) error {
	flags := flag.NewFlagSet("soulnest", flag.ContinueOnError)
	flags.SetOutput(cfg.Stderr)
	flags.Usage = func() {
		fmt.Fprint(cfg.Stderr, usage)
		flags.PrintDefaults()
	}

	configPath := flags.String("config", os.Getenv("SOULNEST_CONFIG"), "settings file (.toml, .yaml, .yml)")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before the environment is read")
	admin := flags.Bool("admin", false, "send the sealed admin API key instead of the bearer token")
	credsFile := flags.String("credentials", config.DefaultCredentialsFile, "credentials file used when the settings pick no backend")
	verbose := flags.Bool("v", false, "log every attempt")
	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return errors.New("missing command")
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", *envFile, err)
		}
	}

	credsPath, err := config.ExpandPath(*credsFile)
	if err != nil {
		return err
	}
	opts := []soulnest.Option{
		soulnest.WithDefaultCredentialStorage(soulnest.NewFileStorage(credsPath)),
	}
	if *admin {
		opts = append(opts, soulnest.WithAdminMode(true))
	}
	if *verbose {
		opts = append(opts, soulnest.WithLogger(telemetry.NewLogger(telemetry.LoggerConfig{
			Level:  "debug",
			Output: cfg.Stderr,
		})))
	}

	client, err := soulnest.NewFromFile(*configPath, opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "public-key":
		return publicKey(ctx, client, cfg)
	case "hello":
		return hello(ctx, client, cfg)
	case "request":
		return request(ctx, client, cfg, cmdArgs)
	case "login":
		return login(ctx, client, cfg, cmdArgs)
	case "logout":
		return client.Users().Logout(ctx)
	case "admin-key":
		if len(cmdArgs) != 1 {
			return errors.New("usage: soulnest admin-key KEY")
		}
		return client.SetAdminAPIKey(ctx, cmdArgs[0])
	case "clear":
		return client.ClearCredentials(ctx)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func publicKey(ctx context.Context, client *soulnest.Client, cfg Config) error {
	key, err := client.PublicKey(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cfg.Stdout, key)
	return nil
}

func hello(ctx context.Context, client *soulnest.Client, cfg Config) error {
	greeting, err := client.Hello(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cfg.Stdout, greeting)
	return nil
}

func request(ctx context.Context, client *soulnest.Client, cfg Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: soulnest request METHOD PATH [BODY]")
	}
	method, path := strings.ToUpper(args[0]), args[1]

	var opts []soulnest.RequestOption
	if len(args) == 3 {
		body := []byte(args[2])
		if args[2] == "-" {
			data, err := io.ReadAll(cfg.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			body = data
		}
		if !json.Valid(body) {
			return errors.New("request body is not valid JSON")
		}
		opts = append(opts, soulnest.WithBody(json.RawMessage(body)))
	}

	var payload json.RawMessage
	if err := client.Do(ctx, method, path, &payload, opts...); err != nil {
		return err
	}
	if len(payload) == 0 || method == http.MethodHead {
		return nil
	}
	return writeJSON(cfg.Stdout, payload)
}

func login(ctx context.Context, client *soulnest.Client, cfg Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: soulnest login USER [PASSWORD]")
	}
	username := args[0]

	var password string
	if len(args) == 2 {
		password = args[1]
	} else {
		line, err := bufio.NewReader(cfg.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	resp, err := client.Users().Login(ctx, username, password)
	if err != nil {
		return err
	}
	return writeJSON(cfg.Stdout, map[string]any{
		"userId":   resp.UserID,
		"username": resp.Username,
		"nickname": resp.Nickname,
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
