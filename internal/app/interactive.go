package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"berichtsheft/internal/form"
	"berichtsheft/internal/prompt"
)

type action int

const (
	actionEdit action = iota
	actionPreviousWeek
	actionThisWeek
	actionNextWeek
	actionGenerate
	actionSave
	actionQuit
)

var actionLabels = []string{
	actionEdit:         "Edit field",
	actionPreviousWeek: "← Previous week",
	actionThisWeek:     "This week",
	actionNextWeek:     "Next week →",
	actionGenerate:     "Generate PDF",
	actionSave:         "Save settings",
	actionQuit:         "Quit",
}

// Run prompts for actions until the user quits or aborts.
func (a *App) Run(ctx context.Context) error {
	last := actionEdit
	for {
		idx, err := a.driver.Select(ctx, prompt.SelectConfig{
			Message:      a.summary(),
			Options:      actionLabels,
			DefaultIndex: int(last),
		})
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actionLabels) {
			continue
		}

		last = action(idx)
		if last == actionQuit {
			return nil
		}
		if err = a.dispatch(ctx, last); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		}
	}
}

func (a *App) dispatch(ctx context.Context, act action) error {
	switch act {
	case actionEdit:
		return a.editField(ctx)
	case actionPreviousWeek:
		return a.shiftWeek(ctx, a.session.PreviousWeek(a.now()))
	case actionNextWeek:
		return a.shiftWeek(ctx, a.session.NextWeek(a.now()))
	case actionThisWeek:
		a.session.CurrentWeek(a.now())
		return a.driver.Info(ctx, a.weekRange())
	case actionGenerate:
		return a.generate(ctx)
	case actionSave:
		if err := a.Save(); err != nil {
			return a.driver.Info(ctx, "Failed to save configuration")
		}
		return a.driver.Info(ctx, "Configuration saved successfully")
	}
	return nil
}

func (a *App) editField(ctx context.Context) error {
	fields := form.Editable()
	options := make([]string, len(fields))
	for i, f := range fields {
		options[i] = fmt.Sprintf("%s: %s", f.Label, preview(a.session.Get(f.Name)))
	}

	idx, err := a.driver.Select(ctx, prompt.SelectConfig{
		Message:  "Field",
		Options:  options,
		PageSize: len(options),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(fields) {
		return nil
	}
	f := fields[idx]

	var value string
	if f.Multiline {
		value, err = a.driver.TextArea(ctx, prompt.TextAreaConfig{
			Message: f.Label,
			Default: a.session.Get(f.Name),
		})
	} else {
		value, err = a.driver.Input(ctx, prompt.InputConfig{
			Message: f.Label,
			Default: a.session.Get(f.Name),
		})
	}
	if err != nil {
		return err
	}
	if err = a.session.Set(f.Name, value); err != nil {
		return err
	}

	if f.Name == form.StartDate {
		if end := form.EndOfWeek(a.session.Get(form.StartDate)); end != "" {
			_ = a.session.Set(form.EndDate, end)
		}
	}
	return nil
}

func (a *App) shiftWeek(ctx context.Context, moved bool) error {
	if !moved {
		return a.driver.Info(ctx, "Could not read the current dates, week unchanged")
	}
	_ = a.Save()
	return a.driver.Info(ctx, a.weekRange())
}

func (a *App) generate(ctx context.Context) error {
	path, err := a.Generate()
	switch {
	case errors.Is(err, form.ErrMissingStartDate):
		return a.driver.Info(ctx, "Please enter a start date before generating PDF")
	case err != nil:
		a.logger.Printf("generate: %v", err)
		return a.driver.Info(ctx, fmt.Sprintf("Error generating PDF: %v", err))
	}
	return a.driver.Info(ctx, fmt.Sprintf("PDF generated successfully: %s", path))
}

func (a *App) summary() string {
	return fmt.Sprintf("Berichtsheft week %s (%s)",
		orDash(a.session.Get(form.WeekNo)), a.weekRange())
}

func (a *App) weekRange() string {
	return fmt.Sprintf("%s - %s",
		orDash(a.session.Get(form.StartDate)), orDash(a.session.Get(form.EndDate)))
}

func preview(v string) string {
	v = strings.ReplaceAll(v, "\n", " | ")
	if r := []rune(v); len(r) > 40 {
		return string(r[:39]) + "…"
	}
	return v
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
