package cli

import (
	"context"
)

// CountsCommand prints the category and folder badges.
type CountsCommand struct {
	app *App
}

// NewCountsCommand creates a new counts command handler
func NewCountsCommand(app *App) *CountsCommand {
	return &CountsCommand{app: app}
}

// Execute runs the counts command
func (c *CountsCommand) Execute(ctx context.Context, _ []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.app.renderer().Counts(c.app.api.Counts(), c.app.api.Folders())
	return nil
}

// DashboardCommand prints today's schedule and overdue tasks.
type DashboardCommand struct {
	app *App
}

// NewDashboardCommand creates a new dashboard command handler
func NewDashboardCommand(app *App) *DashboardCommand {
	return &DashboardCommand{app: app}
}

// Execute runs the dashboard command
func (c *DashboardCommand) Execute(ctx context.Context, _ []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.app.renderer().Dashboard(c.app.api.Dashboard(), c.app.config.Display.OverdueLimit, c.app.api.Folders(), c.app.api.Now())
	return nil
}
