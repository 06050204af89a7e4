package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/studyplanner/internal/config"
	"github.com/fastygo/studyplanner/internal/services/lifecycle"
	"github.com/fastygo/studyplanner/pkg/logger"
	"github.com/fastygo/studyplanner/usecase/planner"
)

// Opener builds a Repository for the loaded configuration.
type Opener func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*planner.Repository, func(), error)

// session is the state shared by every subcommand of one invocation.
type session struct {
	open    Opener
	now     func() time.Time
	repo    *planner.Repository
	form    *planner.Form
	logger  *zap.Logger
	release func()
}

func (s *session) start(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: "console",
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	repo, release, err := s.open(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	s.logger = log
	s.release = release
	if err := repo.Initialize(cmd.Context()); err != nil {
		return err
	}
	s.repo = repo
	s.form = planner.NewForm(repo, s.now)
	return nil
}

func (s *session) close() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}

// Execute runs the planner CLI with the given arguments. An interrupt
// cancels the store call in flight.
func Execute(ctx context.Context, args []string) error {
	ctx, stop := lifecycle.New(0, nil).SignalContext(ctx)
	defer stop()
	return execute(ctx, args, OpenRepository, time.Now, os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, open Opener, now func() time.Time, in io.Reader, out, errOut io.Writer) error {
	s := &session{open: open, now: now}
	defer s.close()

	root := newRootCommand(s)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func newRootCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Track exams, assignments and study tasks",
		Long:          "planner keeps a list of study activities in a local store or on the activity service selected by ACTIVITY_STORE.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.start(cmd)
		},
	}

	root.AddCommand(NewListCommand(s))
	root.AddCommand(NewAddCommand(s))
	root.AddCommand(NewEditCommand(s))
	root.AddCommand(NewToggleCommand(s))
	root.AddCommand(NewDeleteCommand(s))
	return root
}
