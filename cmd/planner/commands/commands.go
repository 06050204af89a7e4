package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/usecase/planner"
)

// NewListCommand prints every activity in date order.
func NewListCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities ordered by date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := s.repo.SortedView()
			if len(view) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma atividade cadastrada.")
				return nil
			}
			for _, a := range view {
				fmt.Fprintln(cmd.OutOrStdout(), formatActivity(a))
			}
			return nil
		},
	}
}

// NewAddCommand stages a new draft, applies the flags and submits it.
func NewAddCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.form.Open()
			if err := applyFlags(cmd, s.form); err != nil {
				return err
			}
			created, err := s.form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Atividade criada: %s\n", formatActivity(created))
			return nil
		},
	}
	draftFlags(cmd, "medium")
	return cmd
}

// NewEditCommand stages an existing activity and overrides the given flags.
func NewEditCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an activity; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, ok := s.repo.Get(domain.ID(args[0]))
			if !ok {
				return domain.ErrActivityNotFound
			}
			if err := s.form.Edit(activity); err != nil {
				return err
			}
			if err := applyFlags(cmd, s.form); err != nil {
				return err
			}
			updated, err := s.form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Atividade atualizada: %s\n", formatActivity(updated))
			return nil
		},
	}
	draftFlags(cmd, "")
	return cmd
}

func NewToggleCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark an activity as done, or as pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toggled, err := s.repo.ToggleComplete(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatActivity(toggled))
			return nil
		},
	}
}

// NewDeleteCommand asks for confirmation unless --yes is given.
func NewDeleteCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := s.repo.RequestDelete(domain.ID(args[0]))
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n[s/N] ", planner.DeletePrompt, token.Title)
				if !confirmed(cmd.InOrStdin()) {
					s.repo.CancelDelete(token)
					fmt.Fprintln(cmd.OutOrStdout(), "Exclusão cancelada.")
					return nil
				}
			}

			if err := s.repo.ConfirmDelete(cmd.Context(), token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Atividade excluída: %s\n", token.Title)
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	return cmd
}

func draftFlags(cmd *cobra.Command, priority string) {
	cmd.Flags().String("title", "", "Activity title")
	cmd.Flags().String("description", "", "Activity description")
	cmd.Flags().String("subject", "", "School subject")
	cmd.Flags().String("date", "", "Due date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().String("time", "", "Due time as HH:MM (defaults to now)")
	cmd.Flags().String("priority", priority, "low, medium or high")
}

// applyFlags copies the flags the user set into the staged draft.
func applyFlags(cmd *cobra.Command, form *planner.Form) error {
	flags := cmd.Flags()
	var (
		date    domain.CalendarDate
		clock   domain.Clock
		changes []func(*planner.FormData)
	)

	if flags.Changed("date") {
		raw, _ := flags.GetString("date")
		parsed, err := domain.ToLocalDate(raw)
		if err != nil {
			return domain.NewValidationError([]string{"date"}, err)
		}
		date = parsed
		changes = append(changes, func(d *planner.FormData) { d.Date = date })
	}
	if flags.Changed("time") {
		raw, _ := flags.GetString("time")
		parsed, err := domain.ParseClock(raw)
		if err != nil {
			return domain.NewValidationError([]string{"time"}, err)
		}
		clock = parsed
		changes = append(changes, func(d *planner.FormData) { d.Time = clock })
	}
	for _, name := range []string{"title", "description", "subject", "priority"} {
		if !flags.Changed(name) {
			continue
		}
		value, _ := flags.GetString(name)
		switch name {
		case "title":
			changes = append(changes, func(d *planner.FormData) { d.Title = value })
		case "description":
			changes = append(changes, func(d *planner.FormData) { d.Description = value })
		case "subject":
			changes = append(changes, func(d *planner.FormData) { d.Subject = value })
		case "priority":
			changes = append(changes, func(d *planner.FormData) { d.Priority = domain.Priority(strings.ToLower(value)) })
		}
	}

	return form.Change(func(d *planner.FormData) {
		for _, change := range changes {
			change(d)
		}
	})
}

func confirmed(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func formatActivity(a domain.Activity) string {
	mark := " "
	if a.Completed {
		mark = "x"
	}
	date := a.Date
	if d, err := domain.ToLocalDate(a.Date); err == nil {
		date = d.Display()
	}
	return fmt.Sprintf("[%s] %s  %s %s  %-5s  %s: %s (%s)",
		mark, a.ID, date, a.Time, a.Priority.Label(), a.Subject, a.Title, a.Description)
}
