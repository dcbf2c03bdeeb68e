package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/browser"

	"fitpost/internal/auth"
	"fitpost/internal/config"
	"fitpost/internal/fitbit"
	"fitpost/internal/logging"
	"fitpost/internal/post"
	"fitpost/internal/report"
	"fitpost/internal/view"
)

// Options holds the per-run settings from CLI flags
type Options struct {
	Since     string
	Preview   bool
	Category  string
	TokenFile string
}

// Run is the main entry point: one invocation, one report. The pipeline is
// strictly linear: token, activity list, one log, parse, summarize,
// render, post.
func Run(ctx context.Context, opts *Options) error {
	log := logging.Logger

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	since, err := time.Parse("2006-01-02", opts.Since)
	if err != nil {
		return fmt.Errorf("--since must be YYYY-MM-DD: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tokenFile := cfg.TokenFile
	if opts.TokenFile != "" {
		tokenFile = opts.TokenFile
	}

	log.Info().
		Str("since", opts.Since).
		Str("activity", opts.Category).
		Bool("preview", opts.Preview).
		Str("token_file", tokenFile).
		Msg("starting fitpost")

	client := fitbit.NewClient(fitbit.Config{
		BaseURL:      cfg.FitbitAPIURL,
		ClientID:     cfg.FitbitClientID,
		ClientSecret: cfg.FitbitClientSecret,
	})
	manager := auth.NewManager(auth.NewFileStore(tokenFile), client)

	token, err := manager.GetValidToken(ctx)
	if err != nil {
		if !errors.Is(err, auth.ErrAuthRequired) {
			return err
		}
		token, err = authorizeInteractively(ctx, manager, client)
		if err != nil {
			return err
		}
	}

	activities, err := client.ListActivities(ctx, token.AccessToken, since)
	if err != nil {
		return fmt.Errorf("fetching activity list: %w", err)
	}
	log.Debug().Int("count", len(activities)).Msg("fetched activity list")

	activity, err := fitbit.SelectLatest(activities, opts.Category)
	if err != nil {
		if errors.Is(err, fitbit.ErrNoActivity) {
			log.Info().
				Str("activity", opts.Category).
				Msg("no matching activity, nothing to report")
			return nil
		}
		return err
	}
	log.Info().
		Int64("log_id", activity.LogID).
		Str("start_time", activity.StartTime).
		Msg("selected activity")

	doc, err := client.FetchActivityLog(ctx, token.AccessToken, activity.LogID)
	if err != nil {
		return fmt.Errorf("fetching activity log: %w", err)
	}

	rep, err := report.Build(activity, doc)
	if err != nil {
		return err
	}

	text, err := view.Render(rep)
	if err != nil {
		return err
	}
	if text == "" {
		log.Info().Msg("activity has no distance, nothing to post")
		return nil
	}

	if opts.Preview {
		fmt.Println("==== PREVIEW MODE ====")
		fmt.Println(text)
		return nil
	}

	return newPoster(cfg).Post(ctx, text)
}

func newPoster(cfg *config.Config) post.Poster {
	if cfg.PostTarget == config.TargetMisskey {
		return post.NewMisskey(cfg.MisskeyAPIURL, cfg.MisskeyAccessToken)
	}
	return post.NewMastodon(cfg.MastodonAPIURL, cfg.MastodonAccessToken)
}

// authorizeInteractively walks the user through the out-of-band
// authorization: open the authorize URL, paste the code back, exchange and
// persist it.
func authorizeInteractively(ctx context.Context, manager *auth.Manager, client *fitbit.Client) (*auth.Token, error) {
	authURL := client.AuthCodeURL()

	fmt.Println("\n=== Fitbit Authorization Required ===")
	fmt.Printf("Visit the following URL and authorize this application:\n%s\n\n", authURL)

	if err := browser.OpenURL(authURL); err != nil {
		logging.Logger.Debug().Err(err).Msg("could not open browser")
	}

	fmt.Print("Enter code > ")
	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("authorization code is required")
	}

	return manager.ExchangeCode(ctx, code)
}
